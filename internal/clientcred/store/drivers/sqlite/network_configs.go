package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/domain"
)

type networkConfigsRepo struct {
	db dbtx
}

func (r *networkConfigsRepo) Upsert(ctx context.Context, nc domain.NetworkConfig) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO network_configs (base_client_id, allowed_cidrs, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (base_client_id) DO UPDATE SET
			allowed_cidrs = excluded.allowed_cidrs,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		nc.BaseClientID, joinList(nc.AllowedCIDRs),
		mapOptionalTime(nc.ExpiresAt), now, now)
	return err
}

func (r *networkConfigsRepo) GetByBase(ctx context.Context, baseClientID string) (domain.NetworkConfig, error) {
	var (
		nc        domain.NetworkConfig
		cidrs     string
		expiresAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT base_client_id, allowed_cidrs, expires_at, created_at, updated_at
		FROM network_configs WHERE base_client_id = ?`, baseClientID).
		Scan(&nc.BaseClientID, &cidrs, &expiresAt, &nc.CreatedAt, &nc.UpdatedAt)
	if err != nil {
		return domain.NetworkConfig{}, mapNotFound(err)
	}
	nc.AllowedCIDRs = splitList(cidrs)
	nc.ExpiresAt = mapNullTimePtr(expiresAt)
	return nc, nil
}

func (r *networkConfigsRepo) DeleteByBase(ctx context.Context, baseClientID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM network_configs WHERE base_client_id = ?`, baseClientID)
	return err
}
