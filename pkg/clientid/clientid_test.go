package clientid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id      string
		base    string
		version int
	}{
		{"acme", "acme", 0},
		{"acme-1", "acme", 1},
		{"acme-12", "acme", 12},
		{"ip-allow-b-client-8", "ip-allow-b-client", 8},
		{"acme-0", "acme-0", 0},   // zero is not a valid version
		{"acme-01", "acme-01", 0}, // leading zeros are literal
		{"acme-", "acme-", 0},
		{"-1", "-1", 0},
		{"a-b-c", "a-b-c", 0},
	}

	for _, tc := range tests {
		base, version := Split(tc.id)
		require.Equal(t, tc.base, base, "base of %q", tc.id)
		require.Equal(t, tc.version, version, "version of %q", tc.id)
	}
}

func TestNextRoundTrips(t *testing.T) {
	t.Parallel()

	id := Next("acme", 0)
	require.Equal(t, "acme-1", id)
	require.Equal(t, "acme", Base(id))
	require.Equal(t, 1, Version(id))

	id = Next("acme", 9)
	require.Equal(t, "acme-10", id)
	require.Equal(t, "acme", Base(id))
	require.Equal(t, 10, Version(id))
}

func TestBaseWithNumericTail(t *testing.T) {
	t.Parallel()

	// "team-7" as a base id is ambiguous with version 7 of "team". String
	// parsing alone cannot tell these apart, which is why records persist
	// their base id explicitly.
	require.Equal(t, "team", Base("team-7"))
	require.Equal(t, "team-7", Base(Next("team-7", 0)[:len("team-7")]))
}
