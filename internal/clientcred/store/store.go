package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable, with transactions handled at the root so callers
// cannot accidentally nest them.
type Store interface {
	Clients() Clients
	Consents() Consents
	NetworkConfigs() NetworkConfigs
	Deployments() Deployments

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., a delete
	// that cascades to shared base-identity config).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	// Insert writes a new credential version (id is provided by app via ULID).
	// A client_id collision returns ErrAlreadyExists.
	Insert(ctx context.Context, c domain.Client) error

	// GetByClientID fetches one credential version by its exact client_id.
	GetByClientID(ctx context.Context, clientID string) (domain.Client, error)

	// ListByBase returns every version for a base identity ordered by the
	// stored version number ascending (canonical first, then -1, -2, ...).
	ListByBase(ctx context.Context, baseClientID string) ([]domain.Client, error)

	// ListAll returns all credential versions ordered by base then version.
	ListAll(ctx context.Context) ([]domain.Client, error)

	// Update rewrites the mutable fields (name, scopes, settings, jwt
	// fields, mfa, resource ids, redirect uris) and bumps updated_at.
	// Identity and secret_hash are not touched.
	Update(ctx context.Context, c domain.Client) error

	// UpdateSecretHash rotates the stored secret for one version.
	UpdateSecretHash(ctx context.Context, clientID, secretHash string) error

	// Delete removes one credential version. Consent rows cascade per schema.
	Delete(ctx context.Context, clientID string) error

	// CountByBase returns the number of live versions for a base identity.
	CountByBase(ctx context.Context, baseClientID string) (int, error)

	// MaxVersion returns the highest stored version number for a base
	// identity, 0 when only the canonical record exists.
	MaxVersion(ctx context.Context, baseClientID string) (int, error)

	// TouchLastAccessed records a successful access check for one version.
	TouchLastAccessed(ctx context.Context, clientID string, at time.Time) error

	// LastAccessed returns max(last_accessed_at) over all versions of a
	// base identity, defaulting to the canonical record's issued_at when no
	// access has ever been recorded.
	LastAccessed(ctx context.Context, baseClientID string) (time.Time, error)
}

type Consents interface {
	// Insert writes the role grants owned by one credential version.
	Insert(ctx context.Context, c domain.Consent) error

	// GetByClientID returns the grants for one credential version.
	GetByClientID(ctx context.Context, clientID string) (domain.Consent, error)

	// ReplaceAuthorities rewrites the grant set for one credential version.
	ReplaceAuthorities(ctx context.Context, clientID string, authorities []string) error
}

type NetworkConfigs interface {
	// Upsert writes or replaces the network restriction for a base identity.
	Upsert(ctx context.Context, nc domain.NetworkConfig) error

	// GetByBase returns the restriction for a base identity.
	GetByBase(ctx context.Context, baseClientID string) (domain.NetworkConfig, error)

	// DeleteByBase removes the restriction for a base identity. Deleting a
	// missing row is not an error.
	DeleteByBase(ctx context.Context, baseClientID string) error
}

type Deployments interface {
	// Insert writes deployment metadata for a base identity. A second
	// insert for the same base returns ErrAlreadyExists.
	Insert(ctx context.Context, d domain.Deployment) error

	// Upsert writes or replaces deployment metadata for a base identity.
	Upsert(ctx context.Context, d domain.Deployment) error

	// GetByBase returns the deployment metadata for a base identity.
	GetByBase(ctx context.Context, baseClientID string) (domain.Deployment, error)

	// DeleteByBase removes the metadata for a base identity. Deleting a
	// missing row is not an error.
	DeleteByBase(ctx context.Context, baseClientID string) error
}
