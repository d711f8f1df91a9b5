package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHS256SignVerify(t *testing.T) {
	t.Parallel()

	secret := []byte("shared-test-secret")
	signer := NewSignerHS256(secret)
	verifier := NewVerifierHS256(secret, "clientcred-admin")

	now := time.Now().UTC()
	claims := NewClaims("operator-1", []string{"clients:read", "clients:write"},
		time.Hour, "clientcred-admin", "ops.admin", now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "operator-1", got.Subject)
	require.Equal(t, "ops.admin", got.Username)
	require.True(t, got.HasScope("clients:write"))
	require.False(t, got.HasScope("admin:write"))
	require.NoError(t, got.ValidateExpiry())
}

func TestHS256Verify_WrongSecret(t *testing.T) {
	t.Parallel()

	signer := NewSignerHS256([]byte("secret-a"))
	verifier := NewVerifierHS256([]byte("secret-b"), "")

	token, err := signer.Sign(NewClaims("sub", nil, time.Hour, "", "", time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestHS256Verify_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	signer := NewSignerHS256(secret)
	verifier := NewVerifierHS256(secret, "")

	past := time.Now().UTC().Add(-2 * time.Hour)
	token, err := signer.Sign(NewClaims("sub", nil, time.Hour, "", "", past))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestHS256Verify_IssuerMismatch(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	signer := NewSignerHS256(secret)
	verifier := NewVerifierHS256(secret, "expected-issuer")

	token, err := signer.Sign(NewClaims("sub", nil, time.Hour, "other-issuer", "", time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestHS256Verify_Malformed(t *testing.T) {
	t.Parallel()

	verifier := NewVerifierHS256([]byte("secret"), "")
	_, err := verifier.Verify("not.a.jwt")
	require.Error(t, err)
}
