package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/domain"
)

type deploymentsRepo struct {
	db dbtx
}

const deploymentColumns = `base_client_id, client_type, team, team_contact,
	team_slack, hosting, namespace, secret_name, client_id_key, secret_key,
	created_at, updated_at`

func (r *deploymentsRepo) Insert(ctx context.Context, d domain.Deployment) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deployments (
			base_client_id, client_type, team, team_contact, team_slack,
			hosting, namespace, secret_name, client_id_key, secret_key,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.BaseClientID, d.ClientType, d.Team, d.TeamContact, d.TeamSlack,
		d.Hosting, d.Namespace, d.SecretName, d.ClientIDKey, d.SecretKey,
		now, now)
	return mapConstraint(err)
}

func (r *deploymentsRepo) Upsert(ctx context.Context, d domain.Deployment) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deployments (
			base_client_id, client_type, team, team_contact, team_slack,
			hosting, namespace, secret_name, client_id_key, secret_key,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (base_client_id) DO UPDATE SET
			client_type = excluded.client_type,
			team = excluded.team,
			team_contact = excluded.team_contact,
			team_slack = excluded.team_slack,
			hosting = excluded.hosting,
			namespace = excluded.namespace,
			secret_name = excluded.secret_name,
			client_id_key = excluded.client_id_key,
			secret_key = excluded.secret_key,
			updated_at = excluded.updated_at`,
		d.BaseClientID, d.ClientType, d.Team, d.TeamContact, d.TeamSlack,
		d.Hosting, d.Namespace, d.SecretName, d.ClientIDKey, d.SecretKey,
		now, now)
	return err
}

func (r *deploymentsRepo) GetByBase(ctx context.Context, baseClientID string) (domain.Deployment, error) {
	var d domain.Deployment
	err := r.db.QueryRowContext(ctx,
		`SELECT `+deploymentColumns+` FROM deployments WHERE base_client_id = ?`,
		baseClientID).
		Scan(&d.BaseClientID, &d.ClientType, &d.Team, &d.TeamContact,
			&d.TeamSlack, &d.Hosting, &d.Namespace, &d.SecretName,
			&d.ClientIDKey, &d.SecretKey, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Deployment{}, mapNotFound(err)
	}
	return d, nil
}

func (r *deploymentsRepo) DeleteByBase(ctx context.Context, baseClientID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM deployments WHERE base_client_id = ?`, baseClientID)
	return err
}
