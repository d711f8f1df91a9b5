package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Set up a temporary pepper file for testing
	tmpDir := os.TempDir()
	pepperPath := filepath.Join(tmpDir, "test-pepper")
	SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func TestHashSecret(t *testing.T) {
	hash, err := HashSecret("some-client-secret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// Verify PHC format
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"),
		"hash should be in PHC format")

	parts := strings.Split(hash, "$")
	require.Len(t, parts, 6, "PHC hash should have 6 parts")
	require.Equal(t, "argon2id", parts[1])
	require.NotEmpty(t, parts[4], "salt should not be empty")
	require.NotEmpty(t, parts[5], "hash should not be empty")
}

func TestHashSecret_UniqueSalts(t *testing.T) {
	secret := "same-secret"

	hash1, err := HashSecret(secret)
	require.NoError(t, err)
	hash2, err := HashSecret(secret)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")

	require.NoError(t, VerifySecret(secret, hash1))
	require.NoError(t, VerifySecret(secret, hash2))
}

func TestVerifySecret_WrongSecret(t *testing.T) {
	hash, err := HashSecret("correct-secret")
	require.NoError(t, err)

	tests := []struct {
		name        string
		wrongSecret string
	}{
		{"completely wrong", "wrong-secret"},
		{"case difference", "Correct-Secret"},
		{"extra space", "correct-secret "},
		{"empty secret", ""},
		{"truncated", "correct-secre"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySecret(tt.wrongSecret, hash)
			require.Error(t, err)
			require.Contains(t, err.Error(), "secret does not match")
		})
	}
}

func TestVerifySecret_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not argon2id", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19"},
		{"bad salt encoding", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySecret("whatever", tt.hash)
			require.Error(t, err)
			require.Contains(t, err.Error(), "invalid hash format")
		})
	}
}
