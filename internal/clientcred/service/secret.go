package service

import "github.com/aussiebroadwan/clientcred/pkg/cryptox"

// SecretHasher produces the stored form of a raw client secret. The raw
// secret only ever exists on the call stack and in the one-shot response.
type SecretHasher interface {
	Hash(raw string) (string, error)
}

// Argon2Hasher is the default hasher, backed by cryptox (argon2id, peppered).
type Argon2Hasher struct{}

func (Argon2Hasher) Hash(raw string) (string, error) {
	return cryptox.HashSecret(raw)
}

// generateSecret mints a new client secret: 48 random bytes, base64url
// without padding.
func generateSecret() (string, error) {
	return cryptox.GenerateSecret(cryptox.SecretSize384)
}
