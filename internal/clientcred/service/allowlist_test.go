package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/domain"
	"github.com/stretchr/testify/require"
)

func newAllowListFixture(t *testing.T) (*ClientService, *AllowListService) {
	t.Helper()
	st := newTestStore(t)
	return NewClientService(st), NewAllowListService(st)
}

func TestAllowList_NoConfigAllowsAnySource(t *testing.T) {
	ctx := context.Background()
	clients, allow := newAllowListFixture(t)

	_, err := clients.Create(ctx, CreateClientRequest{ClientID: "open-client"})
	require.NoError(t, err)

	res, err := allow.Check(ctx, "open-client", "203.0.113.50")
	require.NoError(t, err)
	require.True(t, res.Allowed)
	require.Empty(t, res.Reason)
}

func TestAllowList_CIDRMatching(t *testing.T) {
	ctx := context.Background()
	clients, allow := newAllowListFixture(t)

	_, err := clients.Create(ctx, CreateClientRequest{
		ClientID:   "restricted",
		AllowedIPs: []string{"192.0.2.7/32", "35.176.0.0/16"},
	})
	require.NoError(t, err)

	t.Run("inside single-host entry", func(t *testing.T) {
		res, err := allow.Check(ctx, "restricted", "192.0.2.7")
		require.NoError(t, err)
		require.True(t, res.Allowed)
	})

	t.Run("inside range entry", func(t *testing.T) {
		res, err := allow.Check(ctx, "restricted", "35.176.93.186")
		require.NoError(t, err)
		require.True(t, res.Allowed)
	})

	t.Run("outside all entries", func(t *testing.T) {
		res, err := allow.Check(ctx, "restricted", "235.177.93.186")
		require.NoError(t, err)
		require.False(t, res.Allowed)
		require.Equal(t, ReasonNetworkNotAllowed, res.Reason)
	})
}

func TestAllowList_BareAddressEntry(t *testing.T) {
	ctx := context.Background()
	clients, allow := newAllowListFixture(t)

	_, err := clients.Create(ctx, CreateClientRequest{
		ClientID:   "pinned",
		AllowedIPs: []string{"10.2.3.4"},
	})
	require.NoError(t, err)

	res, err := allow.Check(ctx, "pinned", "10.2.3.4")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = allow.Check(ctx, "pinned", "10.2.3.5")
	require.NoError(t, err)
	require.False(t, res.Allowed)
}

func TestAllowList_VersionedIDSharesBaseConfig(t *testing.T) {
	ctx := context.Background()
	clients, allow := newAllowListFixture(t)

	_, err := clients.Create(ctx, CreateClientRequest{
		ClientID:   "shared",
		AllowedIPs: []string{"35.176.0.0/16"},
	})
	require.NoError(t, err)
	_, err = clients.Duplicate(ctx, "shared")
	require.NoError(t, err)

	res, err := allow.Check(ctx, "shared-1", "35.176.93.186")
	require.NoError(t, err)
	require.True(t, res.Allowed)

	res, err = allow.Check(ctx, "shared-1", "235.177.93.186")
	require.NoError(t, err)
	require.False(t, res.Allowed)
}

func TestAllowList_ExpiredConfigDeniesAllVersions(t *testing.T) {
	ctx := context.Background()
	clients, allow := newAllowListFixture(t)

	_, err := clients.Create(ctx, CreateClientRequest{
		ClientID:   "stale",
		AllowedIPs: []string{"10.0.0.0/8"},
	})
	require.NoError(t, err)

	yesterday := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)
	require.NoError(t, clients.Store.NetworkConfigs().Upsert(ctx, domain.NetworkConfig{
		BaseClientID: "stale",
		AllowedCIDRs: []string{"10.0.0.0/8"},
		ExpiresAt:    &yesterday,
	}))

	// Denied even for an address inside the allowed range.
	res, err := allow.Check(ctx, "stale", "10.1.2.3")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	require.Equal(t, ReasonExpired, res.Reason)
}

func TestAllowList_ExpiryTodayStillAllowed(t *testing.T) {
	ctx := context.Background()
	clients, allow := newAllowListFixture(t)

	_, err := clients.Create(ctx, CreateClientRequest{
		ClientID:   "expiring",
		AllowedIPs: []string{"10.0.0.0/8"},
		ValidDays:  1, // includes today
	})
	require.NoError(t, err)

	res, err := allow.Check(ctx, "expiring", "10.1.2.3")
	require.NoError(t, err)
	require.True(t, res.Allowed)
}

func TestAllowList_UnknownClient(t *testing.T) {
	ctx := context.Background()
	_, allow := newAllowListFixture(t)

	_, err := allow.Check(ctx, "ghost", "10.0.0.1")
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestAllowList_InvalidSourceAddress(t *testing.T) {
	ctx := context.Background()
	clients, allow := newAllowListFixture(t)

	_, err := clients.Create(ctx, CreateClientRequest{
		ClientID:   "strict",
		AllowedIPs: []string{"10.0.0.0/8"},
	})
	require.NoError(t, err)

	var verr *ValidationError
	_, err = allow.Check(ctx, "strict", "not-an-ip")
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "sourceAddress", verr.Field)
}

func TestAllowList_SuccessfulCheckFeedsLastAccessed(t *testing.T) {
	ctx := context.Background()
	clients, allow := newAllowListFixture(t)

	_, err := clients.Create(ctx, CreateClientRequest{ClientID: "tracked"})
	require.NoError(t, err)

	before, err := clients.Store.Clients().LastAccessed(ctx, "tracked")
	require.NoError(t, err)

	_, err = allow.Check(ctx, "tracked", "203.0.113.1")
	require.NoError(t, err)

	after, err := clients.Store.Clients().LastAccessed(ctx, "tracked")
	require.NoError(t, err)
	require.False(t, after.Before(before))

	c, err := clients.Store.Clients().GetByClientID(ctx, "tracked")
	require.NoError(t, err)
	require.NotNil(t, c.LastAccessedAt)
}
