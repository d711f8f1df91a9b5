package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/domain"
	"github.com/aussiebroadwan/clientcred/internal/clientcred/store"
	"github.com/aussiebroadwan/clientcred/internal/clientcred/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestService(t *testing.T) *ClientService {
	t.Helper()
	return NewClientService(newTestStore(t))
}

func TestCreateClient(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	creds, err := svc.Create(ctx, CreateClientRequest{
		ClientID:                   "acme-app",
		Authorities:                []string{"curious_api"},
		AccessTokenValiditySeconds: 1200,
	})
	require.NoError(t, err)
	require.Equal(t, "acme-app", creds.ClientID)
	require.NotEmpty(t, creds.ClientSecret)
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("acme-app")), creds.Base64ClientID)
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte(creds.ClientSecret)), creds.Base64ClientSecret)

	c, err := svc.Store.Clients().GetByClientID(ctx, "acme-app")
	require.NoError(t, err)
	require.True(t, c.Canonical)
	require.Equal(t, 0, c.Version)
	require.Equal(t, "acme-app", c.BaseClientID)
	require.Equal(t, []string{"read"}, c.Scopes)
	require.Equal(t, domain.GrantClientCredentials, c.GrantType)
	require.NotEmpty(t, c.SecretHash)
	require.NotContains(t, c.SecretHash, creds.ClientSecret)

	consent, err := svc.Store.Consents().GetByClientID(ctx, "acme-app")
	require.NoError(t, err)
	require.Equal(t, []string{"ROLE_CURIOUS_API"}, consent.Authorities)
}

func TestCreateClient_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	var verr *ValidationError
	_, err := svc.Create(ctx, CreateClientRequest{ClientID: "   "})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "clientId", verr.Field)
}

func TestCreateClient_AlreadyExistsLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, CreateClientRequest{ClientID: "acme"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateClientRequest{
		ClientID:    "acme",
		Authorities: []string{"extra"},
		AllowedIPs:  []string{"10.0.0.0/8"},
	})
	require.ErrorIs(t, err, ErrClientAlreadyExists)

	// Nothing from the failed attempt may survive.
	n, err := svc.Store.Clients().CountByBase(ctx, "acme")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = svc.Store.Consents().GetByClientID(ctx, "acme")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Store.NetworkConfigs().GetByBase(ctx, "acme")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateClient_VersionedIDConflictsWithBase(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, CreateClientRequest{ClientID: "acme"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateClientRequest{ClientID: "acme-1"})
	require.ErrorIs(t, err, ErrClientAlreadyExists)
}

func TestDuplicateClient_Chain(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, CreateClientRequest{
		ClientID:    "rotate-me",
		Authorities: []string{"AUDIT"},
	})
	require.NoError(t, err)

	first, err := svc.Duplicate(ctx, "rotate-me")
	require.NoError(t, err)
	require.Equal(t, "rotate-me-1", first.ClientID)

	second, err := svc.Duplicate(ctx, "rotate-me")
	require.NoError(t, err)
	require.Equal(t, "rotate-me-2", second.ClientID)

	_, err = svc.Duplicate(ctx, "rotate-me")
	require.ErrorIs(t, err, ErrVersionLimit)

	// Grants are copied verbatim onto each version.
	consent, err := svc.Store.Consents().GetByClientID(ctx, "rotate-me-2")
	require.NoError(t, err)
	require.Equal(t, []string{"ROLE_AUDIT"}, consent.Authorities)

	// Duplicates share configuration but not secrets.
	dup, err := svc.Store.Clients().GetByClientID(ctx, "rotate-me-2")
	require.NoError(t, err)
	require.False(t, dup.Canonical)
	require.Equal(t, 2, dup.Version)
	canonical, err := svc.Store.Clients().GetByClientID(ctx, "rotate-me")
	require.NoError(t, err)
	require.NotEqual(t, canonical.SecretHash, dup.SecretHash)
}

func TestDuplicateClient_ByVersionedID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, CreateClientRequest{ClientID: "svc"})
	require.NoError(t, err)
	_, err = svc.Duplicate(ctx, "svc")
	require.NoError(t, err)

	// Duplicating via an existing versioned id resolves to the same base.
	creds, err := svc.Duplicate(ctx, "svc-1")
	require.NoError(t, err)
	require.Equal(t, "svc-2", creds.ClientID)
}

func TestDuplicateClient_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Duplicate(ctx, "ghost")
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestDeleteClient_CascadesOnLastVersion(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, CreateClientRequest{
		ClientID:   "doomed",
		AllowedIPs: []string{"10.1.0.0/16"},
		Deployment: &DeploymentRequest{Team: "platform", ClientType: "service"},
	})
	require.NoError(t, err)
	_, err = svc.Duplicate(ctx, "doomed")
	require.NoError(t, err)

	// Deleting one of several versions leaves shared config intact.
	require.NoError(t, svc.Delete(ctx, "doomed-1"))
	_, err = svc.Store.NetworkConfigs().GetByBase(ctx, "doomed")
	require.NoError(t, err)
	_, err = svc.Store.Deployments().GetByBase(ctx, "doomed")
	require.NoError(t, err)

	// Deleting the last version removes config and deployment with it.
	require.NoError(t, svc.Delete(ctx, "doomed"))
	_, err = svc.Store.NetworkConfigs().GetByBase(ctx, "doomed")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = svc.Store.Deployments().GetByBase(ctx, "doomed")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, "doomed"), ErrClientNotFound)
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, CreateClientRequest{
		ClientID:                   "known",
		AccessTokenValiditySeconds: 1800,
	})
	require.NoError(t, err)

	info, err := svc.Exists(ctx, "known")
	require.NoError(t, err)
	require.Equal(t, "known", info.ClientID)
	require.Equal(t, 30, info.AccessTokenValidityMinutes)

	_, err = svc.Exists(ctx, "unknown")
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestListDuplicates_NumericOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	svc.MaxVersions = 12

	_, err := svc.Create(ctx, CreateClientRequest{ClientID: "fleet"})
	require.NoError(t, err)
	for range 11 {
		_, err = svc.Duplicate(ctx, "fleet")
		require.NoError(t, err)
	}

	versions, err := svc.ListDuplicates(ctx, "fleet")
	require.NoError(t, err)
	require.Len(t, versions, 12)
	require.Equal(t, "fleet", versions[0].ClientID)
	require.Equal(t, "fleet-1", versions[1].ClientID)
	// Numeric ordering: -9 sorts before -10.
	require.Equal(t, "fleet-9", versions[9].ClientID)
	require.Equal(t, "fleet-10", versions[10].ClientID)
	require.Equal(t, "fleet-11", versions[11].ClientID)

	// Never-accessed versions report their creation time.
	require.Equal(t, versions[0].Created, versions[0].LastAccessed)

	_, err = svc.ListDuplicates(ctx, "nobody")
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestListClients_SummariesAndFilters(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, CreateClientRequest{
		ClientID:    "reporting",
		Authorities: []string{"audit", "VIEW_ONLY"},
		Deployment:  &DeploymentRequest{ClientType: "personal", Team: "insights"},
	})
	require.NoError(t, err)
	_, err = svc.Duplicate(ctx, "reporting")
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateClientRequest{
		ClientID:  "webapp",
		GrantType: domain.GrantAuthorizationCode,
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, "", "", "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.Equal(t, "reporting", all[0].BaseClientID)
	require.Equal(t, 2, all[0].Count)
	require.Equal(t, "ROLE_AUDIT\nROLE_VIEW_ONLY", all[0].Roles)
	require.Equal(t, "PERSONAL", all[0].ClientType)
	require.Equal(t, "insights", all[0].TeamName)
	require.False(t, all[0].Expired)

	byRole, err := svc.List(ctx, "AUDIT", "", "")
	require.NoError(t, err)
	require.Len(t, byRole, 1)
	require.Equal(t, "reporting", byRole[0].BaseClientID)

	byGrant, err := svc.List(ctx, "", domain.GrantAuthorizationCode, "")
	require.NoError(t, err)
	require.Len(t, byGrant, 1)
	require.Equal(t, "webapp", byGrant[0].BaseClientID)

	byType, err := svc.List(ctx, "", "", "PERSONAL")
	require.NoError(t, err)
	require.Len(t, byType, 1)
	require.Equal(t, "reporting", byType[0].BaseClientID)

	none, err := svc.List(ctx, "AUDIT", domain.GrantAuthorizationCode, "")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestMigrateUpsert_CreatesWithMigrationDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	details, err := svc.MigrateUpsert(ctx, MigrationRequest{
		ClientID:                   "legacy-batch-1",
		ClientSecret:               "carried-over-secret",
		Authorities:                []string{"ROLE_community", "batch"},
		AllowedIPs:                 []string{"35.176.0.0/16"},
		AccessTokenValidityMinutes: 20,
		ValidDays:                  30,
	})
	require.NoError(t, err)
	require.Equal(t, "legacy-batch-1", details.ClientID)
	require.Equal(t, []string{"read"}, details.Scopes)
	require.Equal(t, []string{"ROLE_COMMUNITY", "ROLE_BATCH"}, details.Authorities)
	require.Equal(t, 1200, details.AccessTokenValiditySeconds)

	// Versioned legacy ids keep their legacy base identity.
	c, err := svc.Store.Clients().GetByClientID(ctx, "legacy-batch-1")
	require.NoError(t, err)
	require.Equal(t, "legacy-batch", c.BaseClientID)
	require.Equal(t, 1, c.Version)
	require.False(t, c.Canonical)
	require.Equal(t, domain.GrantClientCredentials, c.GrantType)

	nc, err := svc.Store.NetworkConfigs().GetByBase(ctx, "legacy-batch")
	require.NoError(t, err)
	require.Equal(t, []string{"35.176.0.0/16"}, nc.AllowedCIDRs)
	require.NotNil(t, nc.ExpiresAt)
}

func TestMigrateUpsert_EditPreservesIdentityAndSecret(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.MigrateUpsert(ctx, MigrationRequest{
		ClientID:     "legacy",
		ClientSecret: "original-secret",
		Scopes:       []string{"read"},
	})
	require.NoError(t, err)

	before, err := svc.Store.Clients().GetByClientID(ctx, "legacy")
	require.NoError(t, err)

	details, err := svc.MigrateUpsert(ctx, MigrationRequest{
		ClientID:                   "legacy",
		ClientSecret:               "ignored-on-edit",
		Scopes:                     []string{"read", "write"},
		Authorities:                []string{"reporting"},
		AccessTokenValidityMinutes: 60,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"read", "write"}, details.Scopes)
	require.Equal(t, []string{"ROLE_REPORTING"}, details.Authorities)
	require.Equal(t, 3600, details.AccessTokenValiditySeconds)

	after, err := svc.Store.Clients().GetByClientID(ctx, "legacy")
	require.NoError(t, err)
	require.Equal(t, before.ID, after.ID)
	require.Equal(t, before.SecretHash, after.SecretHash)
	require.Equal(t, before.IssuedAt, after.IssuedAt)
}

func TestMigrateUpsert_RequiresSecretOnCreate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	var verr *ValidationError
	_, err := svc.MigrateUpsert(ctx, MigrationRequest{ClientID: "fresh"})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "clientSecret", verr.Field)
}

func TestAddDeployment(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Create(ctx, CreateClientRequest{ClientID: "deployed"})
	require.NoError(t, err)
	_, err = svc.Duplicate(ctx, "deployed")
	require.NoError(t, err)

	// Adding via a versioned id attaches to the shared base identity.
	require.NoError(t, svc.AddDeployment(ctx, "deployed-1", DeploymentRequest{
		Team:    "core",
		Hosting: "cloudplatform",
	}))

	dep, err := svc.Store.Deployments().GetByBase(ctx, "deployed")
	require.NoError(t, err)
	require.Equal(t, "core", dep.Team)
	require.Equal(t, domain.HostingCloudPlatform, dep.Hosting)

	require.ErrorIs(t, svc.AddDeployment(ctx, "deployed", DeploymentRequest{Team: "other"}),
		ErrDeploymentExists)
	require.ErrorIs(t, svc.AddDeployment(ctx, "missing", DeploymentRequest{}), ErrClientNotFound)
}
