package sqlite

import (
	"context"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/domain"
)

type consentsRepo struct {
	db dbtx
}

func (r *consentsRepo) Insert(ctx context.Context, c domain.Consent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO consents (client_record_id, client_id, authorities)
		VALUES (?, ?, ?)`,
		c.ClientRecordID, c.ClientID, joinList(c.Authorities))
	return mapConstraint(err)
}

func (r *consentsRepo) GetByClientID(ctx context.Context, clientID string) (domain.Consent, error) {
	var (
		c           domain.Consent
		authorities string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT client_record_id, client_id, authorities
		FROM consents WHERE client_id = ?`, clientID).
		Scan(&c.ClientRecordID, &c.ClientID, &authorities)
	if err != nil {
		return domain.Consent{}, mapNotFound(err)
	}
	c.Authorities = splitList(authorities)
	return c, nil
}

func (r *consentsRepo) ReplaceAuthorities(ctx context.Context, clientID string, authorities []string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE consents SET authorities = ? WHERE client_id = ?`,
		joinList(authorities), clientID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
