package clientcred_test

import (
	"testing"

	"github.com/aussiebroadwan/clientcred/pkg/credsdk"
	"github.com/stretchr/testify/require"
)

// TestAccessCheck covers the allow-list verdicts end to end.
func TestAccessCheck(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	sdk := newAdminSDK(t, baseURL)
	ctx := t.Context()

	_, err := sdk.CreateClient(ctx, credsdk.CreateClientRequest{
		ClientID:   "locked-down",
		AllowedIPs: []string{"35.176.0.0/16", "192.0.2.7"},
	})
	require.NoError(t, err)

	_, err = sdk.CreateClient(ctx, credsdk.CreateClientRequest{ClientID: "wide-open"})
	require.NoError(t, err)

	t.Run("no config allows anything", func(t *testing.T) {
		res, err := sdk.CheckAccess(ctx, credsdk.AccessCheckRequest{
			ClientID:      "wide-open",
			SourceAddress: "203.0.113.99",
		})
		require.NoError(t, err)
		require.True(t, res.Allowed)
		require.Empty(t, res.Reason)
	})

	t.Run("address inside a range", func(t *testing.T) {
		res, err := sdk.CheckAccess(ctx, credsdk.AccessCheckRequest{
			ClientID:      "locked-down",
			SourceAddress: "35.176.93.186",
		})
		require.NoError(t, err)
		require.True(t, res.Allowed)
	})

	t.Run("bare address entry", func(t *testing.T) {
		res, err := sdk.CheckAccess(ctx, credsdk.AccessCheckRequest{
			ClientID:      "locked-down",
			SourceAddress: "192.0.2.7",
		})
		require.NoError(t, err)
		require.True(t, res.Allowed)
	})

	t.Run("outside every entry", func(t *testing.T) {
		res, err := sdk.CheckAccess(ctx, credsdk.AccessCheckRequest{
			ClientID:      "locked-down",
			SourceAddress: "203.0.113.99",
		})
		require.NoError(t, err)
		require.False(t, res.Allowed)
		require.Equal(t, "network_not_allowed", res.Reason)
	})

	t.Run("versioned id shares the base config", func(t *testing.T) {
		dup, err := sdk.DuplicateClient(ctx, "locked-down")
		require.NoError(t, err)

		res, err := sdk.CheckAccess(ctx, credsdk.AccessCheckRequest{
			ClientID:      dup.ClientID,
			SourceAddress: "35.176.1.1",
		})
		require.NoError(t, err)
		require.True(t, res.Allowed)
	})

	t.Run("missing source address falls back to the caller", func(t *testing.T) {
		// The test client's address is never inside 35.176.0.0/16, so the
		// fallback path is observable as a denial rather than a 400.
		res, err := sdk.CheckAccess(ctx, credsdk.AccessCheckRequest{ClientID: "locked-down"})
		require.NoError(t, err)
		require.False(t, res.Allowed)
		require.Equal(t, "network_not_allowed", res.Reason)
	})

	t.Run("unknown client is 404", func(t *testing.T) {
		_, err := sdk.CheckAccess(ctx, credsdk.AccessCheckRequest{
			ClientID:      "ghost",
			SourceAddress: "10.0.0.1",
		})
		require.True(t, credsdk.IsNotFound(err), "expected 404, got: %v", err)
	})

	t.Run("successful check surfaces in lastAccessed", func(t *testing.T) {
		before, err := sdk.ListDuplicates(ctx, "wide-open")
		require.NoError(t, err)
		require.Len(t, before, 1)

		_, err = sdk.CheckAccess(ctx, credsdk.AccessCheckRequest{
			ClientID:      "wide-open",
			SourceAddress: "203.0.113.99",
		})
		require.NoError(t, err)

		after, err := sdk.ListDuplicates(ctx, "wide-open")
		require.NoError(t, err)
		require.Len(t, after, 1)
		require.False(t, after[0].LastAccessed.Before(before[0].LastAccessed))
	})
}

// TestHealth exercises both probes through the SDK.
func TestHealth(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	sdk := credsdk.NewClient(baseURL, "")
	ctx := t.Context()

	livez, err := sdk.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", livez.Status)
	require.NotEmpty(t, livez.Version)

	readyz, err := sdk.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", readyz.Status)
	require.NotNil(t, readyz.Checks)
	require.Equal(t, "ok", readyz.Checks.Database)
}
