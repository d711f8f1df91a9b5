package service

import (
	"context"
	"encoding/base64"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/domain"
	"github.com/aussiebroadwan/clientcred/internal/clientcred/store"
	"github.com/aussiebroadwan/clientcred/pkg/clientid"
	"github.com/aussiebroadwan/clientcred/pkg/idx"
	"github.com/aussiebroadwan/clientcred/pkg/slogx"
)

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrClientAlreadyExists = errors.New("client already exists")
	ErrVersionLimit        = errors.New("client version limit reached")
	ErrDeploymentExists    = errors.New("deployment already exists")
)

// ValidationError reports a malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// DefaultMaxVersions is the total number of live credential versions a
// base identity may carry (the canonical record plus two duplicates).
const DefaultMaxVersions = 3

const maxClientIDLength = 100

// ClientService owns the credential lifecycle: create, duplicate, delete,
// migrate-upsert and the read projections. Mutations on the same base
// identity are serialized and run inside a single store transaction.
type ClientService struct {
	Store       store.Store
	Hasher      SecretHasher
	Audit       Recorder
	MaxVersions int

	locks *baseLocks
}

func NewClientService(st store.Store) *ClientService {
	return &ClientService{
		Store:       st,
		Hasher:      Argon2Hasher{},
		Audit:       SlogRecorder{},
		MaxVersions: DefaultMaxVersions,
		locks:       newBaseLocks(),
	}
}

func newCredentials(clientID, secret string) Credentials {
	return Credentials{
		ClientID:           clientID,
		ClientSecret:       secret,
		Base64ClientID:     base64.StdEncoding.EncodeToString([]byte(clientID)),
		Base64ClientSecret: base64.StdEncoding.EncodeToString([]byte(secret)),
	}
}

func validateClientID(clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return &ValidationError{Field: "clientId", Message: "must not be blank"}
	}
	if len(clientID) > maxClientIDLength {
		return &ValidationError{Field: "clientId", Message: "max size is 100"}
	}
	return nil
}

// resolveBase maps an inbound client id onto its stored base identity.
// An exact-match lookup wins so base identities that themselves end in
// "-<digits>" are never mis-split; suffix stripping is only the fallback
// for ids we have not seen (e.g. a versioned id of a known base).
func (s *ClientService) resolveBase(ctx context.Context, clientID string) string {
	if c, err := s.Store.Clients().GetByClientID(ctx, clientID); err == nil {
		return c.BaseClientID
	}
	base, _ := clientid.Split(clientID)
	return base
}

// Create registers a new canonical client and mints its secret. The raw
// secret is returned exactly once and never stored.
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (Credentials, error) {
	l := slogx.FromContext(ctx)

	if err := validateClientID(req.ClientID); err != nil {
		return Credentials{}, err
	}

	unlock := s.locks.lock(req.ClientID)
	defer unlock()

	// Conflict when the id, or the base it would version under, already
	// has any live version.
	for _, base := range candidateBases(req.ClientID) {
		n, err := s.Store.Clients().CountByBase(ctx, base)
		if err != nil {
			return Credentials{}, err
		}
		if n > 0 {
			return Credentials{}, ErrClientAlreadyExists
		}
	}

	secret, err := generateSecret()
	if err != nil {
		l.Error("failed to generate client secret", "error", err)
		return Credentials{}, err
	}
	hash, err := s.Hasher.Hash(secret)
	if err != nil {
		l.Error("failed to hash client secret", "error", err)
		return Credentials{}, err
	}

	now := time.Now().UTC()
	c := newClientFromCreate(req, now)
	c.SecretHash = hash
	authorities := normalizeAuthorities(req.Authorities)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clients().Insert(ctx, c); err != nil {
			return err
		}
		if len(authorities) > 0 {
			if err := tx.Consents().Insert(ctx, domain.Consent{
				ClientRecordID: c.ID,
				ClientID:       c.ClientID,
				Authorities:    authorities,
			}); err != nil {
				return err
			}
		}
		if len(req.AllowedIPs) > 0 {
			if err := tx.NetworkConfigs().Upsert(ctx, domain.NetworkConfig{
				BaseClientID: c.BaseClientID,
				AllowedCIDRs: req.AllowedIPs,
				ExpiresAt:    expiryDate(req.ValidDays, now),
			}); err != nil {
				return err
			}
		}
		if req.Deployment != nil {
			if err := tx.Deployments().Upsert(ctx, deploymentFromRequest(c.BaseClientID, *req.Deployment)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return Credentials{}, ErrClientAlreadyExists
		}
		l.Error("failed to create client", "error", err, "client_id", req.ClientID)
		return Credentials{}, err
	}

	s.Audit.Record(ctx, EventClientCreated, map[string]string{"clientId": c.ClientID})
	l.Info("client created", "client_id", c.ClientID)
	return newCredentials(c.ClientID, secret), nil
}

// candidateBases returns the base identities a fresh registration could
// collide with: the id itself and, when the id looks versioned, the base
// its suffix would strip to.
func candidateBases(clientID string) []string {
	base, _ := clientid.Split(clientID)
	if base == clientID {
		return []string{clientID}
	}
	return []string{clientID, base}
}

// Duplicate mints a new credential version for an existing base identity:
// same configuration and role grants, fresh id and secret. Network config
// and deployment metadata stay shared, keyed by base.
func (s *ClientService) Duplicate(ctx context.Context, clientID string) (Credentials, error) {
	l := slogx.FromContext(ctx)

	base := s.resolveBase(ctx, clientID)
	unlock := s.locks.lock(base)
	defer unlock()

	versions, err := s.Store.Clients().ListByBase(ctx, base)
	if err != nil {
		return Credentials{}, err
	}
	if len(versions) == 0 {
		return Credentials{}, ErrClientNotFound
	}
	if len(versions) >= s.MaxVersions {
		return Credentials{}, ErrVersionLimit
	}

	canonical := versions[0]
	maxVersion := versions[len(versions)-1].Version
	nextID := clientid.Next(base, maxVersion)

	secret, err := generateSecret()
	if err != nil {
		return Credentials{}, err
	}
	hash, err := s.Hasher.Hash(secret)
	if err != nil {
		return Credentials{}, err
	}

	now := time.Now().UTC()
	dup := canonical
	dup.ID = idx.New().String()
	dup.ClientID = nextID
	dup.Version = maxVersion + 1
	dup.Canonical = false
	dup.SecretHash = hash
	dup.IssuedAt = now
	dup.LastAccessedAt = nil
	dup.CreatedAt = now
	dup.UpdatedAt = now

	// Role grants are copied verbatim from the canonical record.
	var authorities []string
	if consent, err := s.Store.Consents().GetByClientID(ctx, canonical.ClientID); err == nil {
		authorities = consent.Authorities
	} else if !errors.Is(err, store.ErrNotFound) {
		return Credentials{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clients().Insert(ctx, dup); err != nil {
			return err
		}
		if len(authorities) > 0 {
			return tx.Consents().Insert(ctx, domain.Consent{
				ClientRecordID: dup.ID,
				ClientID:       dup.ClientID,
				Authorities:    authorities,
			})
		}
		return nil
	})
	if err != nil {
		l.Error("failed to duplicate client", "error", err, "base_client_id", base)
		return Credentials{}, err
	}

	s.Audit.Record(ctx, EventClientDuplicated, map[string]string{"clientId": nextID, "baseClientId": base})
	l.Info("client duplicated", "client_id", nextID, "base_client_id", base)
	return newCredentials(nextID, secret), nil
}

// Delete removes one credential version. When the deleted version was the
// last one for its base identity, the shared network config and deployment
// metadata go with it, all in one transaction.
func (s *ClientService) Delete(ctx context.Context, clientID string) error {
	l := slogx.FromContext(ctx)

	c, err := s.Store.Clients().GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		return err
	}

	unlock := s.locks.lock(c.BaseClientID)
	defer unlock()

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clients().Delete(ctx, clientID); err != nil {
			return err
		}
		remaining, err := tx.Clients().CountByBase(ctx, c.BaseClientID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.NetworkConfigs().DeleteByBase(ctx, c.BaseClientID); err != nil {
				return err
			}
			if err := tx.Deployments().DeleteByBase(ctx, c.BaseClientID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		l.Error("failed to delete client", "error", err, "client_id", clientID)
		return err
	}

	s.Audit.Record(ctx, EventClientDeleted, map[string]string{"clientId": clientID})
	l.Info("client deleted", "client_id", clientID, "base_client_id", c.BaseClientID)
	return nil
}

// Exists reports whether a credential version is registered, along with
// its configured access-token validity in minutes.
func (s *ClientService) Exists(ctx context.Context, clientID string) (ExistsInfo, error) {
	c, err := s.Store.Clients().GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ExistsInfo{}, ErrClientNotFound
		}
		return ExistsInfo{}, err
	}
	return ExistsInfo{
		ClientID:                   c.ClientID,
		AccessTokenValidityMinutes: c.AccessTokenValiditySeconds() / 60,
	}, nil
}

// ListDuplicates returns every live version for the given id's base
// identity in version order (canonical first, then -1, -2, ...).
func (s *ClientService) ListDuplicates(ctx context.Context, clientID string) ([]VersionInfo, error) {
	base := s.resolveBase(ctx, clientID)

	versions, err := s.Store.Clients().ListByBase(ctx, base)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, ErrClientNotFound
	}

	out := make([]VersionInfo, 0, len(versions))
	for _, v := range versions {
		lastAccessed := v.IssuedAt
		if v.LastAccessedAt != nil {
			lastAccessed = *v.LastAccessedAt
		}
		out = append(out, VersionInfo{
			ClientID:     v.ClientID,
			Created:      v.IssuedAt,
			LastAccessed: lastAccessed,
		})
	}
	return out, nil
}

// List projects one summary row per base identity, optionally filtered by
// role, grant type, or deployment client type.
func (s *ClientService) List(ctx context.Context, role, grantType, clientType string) ([]ClientSummary, error) {
	clients, err := s.Store.Clients().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var roleFilter string
	if role != "" {
		if normalized := normalizeAuthorities([]string{role}); len(normalized) > 0 {
			roleFilter = normalized[0]
		}
	}
	clientType = strings.ToUpper(strings.TrimSpace(clientType))

	var (
		out     []ClientSummary
		grouped = groupByBase(clients)
	)
	for _, group := range grouped {
		canonical := group[0]

		roles := map[string]struct{}{}
		for _, v := range group {
			consent, err := s.Store.Consents().GetByClientID(ctx, v.ClientID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					continue
				}
				return nil, err
			}
			for _, a := range consent.Authorities {
				roles[a] = struct{}{}
			}
		}
		sortedRoles := make([]string, 0, len(roles))
		for r := range roles {
			sortedRoles = append(sortedRoles, r)
		}
		sort.Strings(sortedRoles)

		summary := ClientSummary{
			BaseClientID: canonical.BaseClientID,
			GrantType:    canonical.GrantType,
			Roles:        strings.Join(sortedRoles, "\n"),
			Count:        len(group),
		}

		if dep, err := s.Store.Deployments().GetByBase(ctx, canonical.BaseClientID); err == nil {
			summary.ClientType = dep.ClientType
			summary.TeamName = dep.Team
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		if nc, err := s.Store.NetworkConfigs().GetByBase(ctx, canonical.BaseClientID); err == nil {
			summary.Expired = configExpired(nc, time.Now().UTC())
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}

		if roleFilter != "" {
			if _, ok := roles[roleFilter]; !ok {
				continue
			}
		}
		if grantType != "" && summary.GrantType != grantType {
			continue
		}
		if clientType != "" && summary.ClientType != clientType {
			continue
		}

		out = append(out, summary)
	}
	return out, nil
}

// groupByBase buckets clients per base identity, preserving the store's
// base-then-version ordering.
func groupByBase(clients []domain.Client) [][]domain.Client {
	var out [][]domain.Client
	for _, c := range clients {
		if n := len(out); n > 0 && out[n-1][0].BaseClientID == c.BaseClientID {
			out[n-1] = append(out[n-1], c)
			continue
		}
		out = append(out, []domain.Client{c})
	}
	return out
}

// MigrateUpsert carries a legacy client across: an unknown id is created
// with migration defaults and the supplied secret, a known id is edited in
// place preserving identity and secret.
func (s *ClientService) MigrateUpsert(ctx context.Context, req MigrationRequest) (ClientDetails, error) {
	l := slogx.FromContext(ctx)

	if err := validateClientID(req.ClientID); err != nil {
		return ClientDetails{}, err
	}

	base, _ := clientid.Split(req.ClientID)
	unlock := s.locks.lock(base)
	defer unlock()

	now := time.Now().UTC()
	authorities := normalizeAuthorities(req.Authorities)

	existing, err := s.Store.Clients().GetByClientID(ctx, req.ClientID)
	switch {
	case err == nil:
		details, uerr := s.migrateEdit(ctx, existing, req, authorities, now)
		if uerr != nil {
			return ClientDetails{}, uerr
		}
		s.Audit.Record(ctx, EventClientMigrated, map[string]string{"clientId": req.ClientID})
		return details, nil

	case errors.Is(err, store.ErrNotFound):
		details, cerr := s.migrateCreate(ctx, req, authorities, now)
		if cerr != nil {
			return ClientDetails{}, cerr
		}
		s.Audit.Record(ctx, EventClientMigrated, map[string]string{"clientId": req.ClientID})
		l.Info("client migrated", "client_id", req.ClientID)
		return details, nil

	default:
		return ClientDetails{}, err
	}
}

func (s *ClientService) migrateCreate(ctx context.Context, req MigrationRequest, authorities []string, now time.Time) (ClientDetails, error) {
	if req.ClientSecret == "" {
		return ClientDetails{}, &ValidationError{Field: "clientSecret", Message: "must not be blank"}
	}

	hash, err := s.Hasher.Hash(req.ClientSecret)
	if err != nil {
		return ClientDetails{}, err
	}

	c := newClientFromMigration(req, now)
	c.SecretHash = hash

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clients().Insert(ctx, c); err != nil {
			return err
		}
		if len(authorities) > 0 {
			if err := tx.Consents().Insert(ctx, domain.Consent{
				ClientRecordID: c.ID,
				ClientID:       c.ClientID,
				Authorities:    authorities,
			}); err != nil {
				return err
			}
		}
		if len(req.AllowedIPs) > 0 {
			if err := tx.NetworkConfigs().Upsert(ctx, domain.NetworkConfig{
				BaseClientID: c.BaseClientID,
				AllowedCIDRs: req.AllowedIPs,
				ExpiresAt:    expiryDate(req.ValidDays, now),
			}); err != nil {
				return err
			}
		}
		if req.Deployment != nil {
			return tx.Deployments().Upsert(ctx, deploymentFromRequest(c.BaseClientID, *req.Deployment))
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ClientDetails{}, ErrClientAlreadyExists
		}
		return ClientDetails{}, err
	}

	return detailsFromClient(c, authorities), nil
}

func (s *ClientService) migrateEdit(ctx context.Context, existing domain.Client, req MigrationRequest, authorities []string, now time.Time) (ClientDetails, error) {
	updated := existing
	if len(req.Scopes) > 0 {
		updated.Scopes = req.Scopes
	}
	if len(req.RedirectURIs) > 0 {
		updated.RedirectURIs = req.RedirectURIs
	}
	updated.Settings = mergeSettings(existing.Settings,
		buildSettings(req.AccessTokenValidityMinutes*60, 0, req.DatabaseUsername, req.TicketNumber))
	updated.JWTFields = req.JWTFields
	updated.MFA = domain.ParseMFAPolicy(req.MFA)
	updated.MFARememberMe = req.MFARememberMe
	updated.ResourceIDs = req.ResourceIDs
	updated.UpdatedAt = now

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clients().Update(ctx, updated); err != nil {
			return err
		}
		if len(authorities) > 0 {
			err := tx.Consents().ReplaceAuthorities(ctx, updated.ClientID, authorities)
			if errors.Is(err, store.ErrNotFound) {
				err = tx.Consents().Insert(ctx, domain.Consent{
					ClientRecordID: updated.ID,
					ClientID:       updated.ClientID,
					Authorities:    authorities,
				})
			}
			if err != nil {
				return err
			}
		}
		if len(req.AllowedIPs) > 0 {
			if err := tx.NetworkConfigs().Upsert(ctx, domain.NetworkConfig{
				BaseClientID: updated.BaseClientID,
				AllowedCIDRs: req.AllowedIPs,
				ExpiresAt:    expiryDate(req.ValidDays, now),
			}); err != nil {
				return err
			}
		}
		if req.Deployment != nil {
			return tx.Deployments().Upsert(ctx, deploymentFromRequest(updated.BaseClientID, *req.Deployment))
		}
		return nil
	})
	if err != nil {
		return ClientDetails{}, err
	}

	if len(authorities) == 0 {
		if consent, err := s.Store.Consents().GetByClientID(ctx, updated.ClientID); err == nil {
			authorities = consent.Authorities
		}
	}
	return detailsFromClient(updated, authorities), nil
}

// mergeSettings overlays updates onto the existing bag without dropping
// keys the migration payload did not mention.
func mergeSettings(existing, updates map[string]string) map[string]string {
	merged := make(map[string]string, len(existing)+len(updates))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	return merged
}

// AddDeployment attaches deployment metadata to a client's base identity.
// Adding when metadata already exists is a conflict; the migrate path
// upserts instead.
func (s *ClientService) AddDeployment(ctx context.Context, clientID string, req DeploymentRequest) error {
	base := s.resolveBase(ctx, clientID)

	n, err := s.Store.Clients().CountByBase(ctx, base)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrClientNotFound
	}

	err = s.Store.Deployments().Insert(ctx, deploymentFromRequest(base, req))
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrDeploymentExists
		}
		return err
	}

	s.Audit.Record(ctx, EventDeploymentAdded, map[string]string{"baseClientId": base})
	return nil
}

func configExpired(nc domain.NetworkConfig, now time.Time) bool {
	if nc.ExpiresAt == nil {
		return false
	}
	today := now.Truncate(24 * time.Hour)
	return nc.ExpiresAt.Before(today)
}
