package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/domain"
	"github.com/aussiebroadwan/clientcred/internal/clientcred/store"
)

type clientsRepo struct {
	db dbtx
}

const clientColumns = `id, client_id, base_client_id, version, canonical, name,
	secret_hash, auth_method, grant_type, redirect_uris, scopes, settings,
	jwt_fields, mfa, mfa_remember_me, resource_ids, issued_at,
	last_accessed_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		c            domain.Client
		redirectURIs string
		scopes       string
		settings     string
		mfa          string
		resourceIDs  string
		lastAccessed sql.NullTime
	)

	err := row.Scan(
		&c.ID, &c.ClientID, &c.BaseClientID, &c.Version, &c.Canonical,
		&c.Name, &c.SecretHash, &c.AuthMethod, &c.GrantType, &redirectURIs,
		&scopes, &settings, &c.JWTFields, &mfa, &c.MFARememberMe,
		&resourceIDs, &c.IssuedAt, &lastAccessed, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Client{}, err
	}

	c.RedirectURIs = splitList(redirectURIs)
	c.Scopes = splitList(scopes)
	c.ResourceIDs = splitList(resourceIDs)
	c.MFA = domain.MFAPolicy(mfa)
	c.LastAccessedAt = mapNullTimePtr(lastAccessed)

	c.Settings, err = decodeSettings(settings)
	if err != nil {
		return domain.Client{}, err
	}

	return c, nil
}

func (r *clientsRepo) Insert(ctx context.Context, c domain.Client) error {
	settings, err := encodeSettings(c.Settings)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO clients (
			id, client_id, base_client_id, version, canonical, name,
			secret_hash, auth_method, grant_type, redirect_uris, scopes,
			settings, jwt_fields, mfa, mfa_remember_me, resource_ids,
			issued_at, last_accessed_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ClientID, c.BaseClientID, c.Version, c.Canonical, c.Name,
		c.SecretHash, c.AuthMethod, c.GrantType, joinList(c.RedirectURIs),
		joinList(c.Scopes), settings, c.JWTFields, string(c.MFA),
		c.MFARememberMe, joinList(c.ResourceIDs), c.IssuedAt,
		mapOptionalTime(c.LastAccessedAt), c.CreatedAt, c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *clientsRepo) GetByClientID(ctx context.Context, clientID string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE client_id = ?`, clientID)

	c, err := scanClient(row)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) ListByBase(ctx context.Context, baseClientID string) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients
		 WHERE base_client_id = ? ORDER BY version ASC`, baseClientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectClients(rows)
}

func (r *clientsRepo) ListAll(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients
		 ORDER BY base_client_id ASC, version ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectClients(rows)
}

func collectClients(rows *sql.Rows) ([]domain.Client, error) {
	var out []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *clientsRepo) Update(ctx context.Context, c domain.Client) error {
	settings, err := encodeSettings(c.Settings)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE clients SET
			name = ?, auth_method = ?, grant_type = ?, redirect_uris = ?,
			scopes = ?, settings = ?, jwt_fields = ?, mfa = ?,
			mfa_remember_me = ?, resource_ids = ?, updated_at = ?
		WHERE client_id = ?`,
		c.Name, c.AuthMethod, c.GrantType, joinList(c.RedirectURIs),
		joinList(c.Scopes), settings, c.JWTFields, string(c.MFA),
		c.MFARememberMe, joinList(c.ResourceIDs), time.Now().UTC(),
		c.ClientID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *clientsRepo) UpdateSecretHash(ctx context.Context, clientID, secretHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET secret_hash = ?, updated_at = ? WHERE client_id = ?`,
		secretHash, time.Now().UTC(), clientID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *clientsRepo) Delete(ctx context.Context, clientID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM clients WHERE client_id = ?`, clientID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *clientsRepo) CountByBase(ctx context.Context, baseClientID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients WHERE base_client_id = ?`, baseClientID).Scan(&n)
	return n, err
}

func (r *clientsRepo) MaxVersion(ctx context.Context, baseClientID string) (int, error) {
	var v int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM clients WHERE base_client_id = ?`,
		baseClientID).Scan(&v)
	return v, err
}

func (r *clientsRepo) TouchLastAccessed(ctx context.Context, clientID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET last_accessed_at = ? WHERE client_id = ?`,
		at, clientID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *clientsRepo) LastAccessed(ctx context.Context, baseClientID string) (time.Time, error) {
	// Most recent access across every version. Queried directly rather
	// than via MAX() so the driver keeps the TIMESTAMP column typing.
	var at time.Time
	err := r.db.QueryRowContext(ctx, `
		SELECT last_accessed_at FROM clients
		WHERE base_client_id = ? AND last_accessed_at IS NOT NULL
		ORDER BY last_accessed_at DESC LIMIT 1`, baseClientID).Scan(&at)
	if err == nil {
		return at, nil
	}
	if err != sql.ErrNoRows {
		return time.Time{}, err
	}

	// Never accessed: fall back to the earliest registration's issued_at.
	err = r.db.QueryRowContext(ctx, `
		SELECT issued_at FROM clients
		WHERE base_client_id = ? ORDER BY version ASC LIMIT 1`,
		baseClientID).Scan(&at)
	if err != nil {
		return time.Time{}, mapNotFound(err)
	}
	return at, nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
