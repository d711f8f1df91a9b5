package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret(SecretSize384)
	require.NoError(t, err)
	require.NotEmpty(t, secret)

	// base64url without padding, decodes back to the requested size
	raw, err := base64.RawURLEncoding.DecodeString(secret)
	require.NoError(t, err)
	require.Len(t, raw, SecretSize384)
}

func TestGenerateSecret_Unique(t *testing.T) {
	a, err := GenerateSecret(SecretSize256)
	require.NoError(t, err)
	b, err := GenerateSecret(SecretSize256)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestGenerateSecret_InvalidSize(t *testing.T) {
	_, err := GenerateSecret(0)
	require.Error(t, err)
	_, err = GenerateSecret(-1)
	require.Error(t, err)
}
