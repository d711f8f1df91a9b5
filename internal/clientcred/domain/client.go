package domain

import (
	"strconv"
	"time"
)

// Grant types and auth methods accepted at registration.
const (
	GrantClientCredentials = "client_credentials"
	GrantAuthorizationCode = "authorization_code"

	AuthMethodSecretBasic = "client_secret_basic"
)

// Settings bag keys. Token lifetimes are stored in seconds; the exists
// endpoint reports access-token validity in minutes.
const (
	SettingAccessTokenValidity  = "access_token_validity"
	SettingRefreshTokenValidity = "refresh_token_validity"
	SettingDatabaseUsername     = "database_username"
	SettingTicketNumber         = "ticket_number"
)

// MFAPolicy is opaque client configuration passed through to the token
// issuer. This service stores it and never evaluates it.
type MFAPolicy string

const (
	MFANone      MFAPolicy = "none"
	MFAUntrusted MFAPolicy = "untrusted"
	MFAAll       MFAPolicy = "all"
)

// ParseMFAPolicy maps an inbound string onto a known policy, defaulting
// to MFANone for empty or unknown values.
func ParseMFAPolicy(s string) MFAPolicy {
	switch MFAPolicy(s) {
	case MFAUntrusted, MFAAll:
		return MFAPolicy(s)
	default:
		return MFANone
	}
}

// Client is one credential version. The canonical registration carries
// Version 0 and an unsuffixed ClientID; duplicates carry "-1", "-2", ...
// suffixes. BaseClientID, Version and Canonical are persisted at creation
// so base identity never has to be re-derived from string shape.
type Client struct {
	ID             string // ULID row id
	ClientID       string // versioned identifier, unique
	BaseClientID   string
	Version        int
	Canonical      bool
	Name           string
	SecretHash     string // argon2 encoded
	AuthMethod     string
	GrantType      string
	RedirectURIs   []string
	Scopes         []string
	Settings       map[string]string
	JWTFields      string // optional claim mapping passed to the token issuer
	MFA            MFAPolicy
	MFARememberMe  bool
	ResourceIDs    []string
	IssuedAt       time.Time
	LastAccessedAt *time.Time // most recent successful access check (nullable)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SettingInt reads an integer setting, returning def when the key is
// absent or malformed.
func (c Client) SettingInt(key string, def int) int {
	v, ok := c.Settings[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// AccessTokenValiditySeconds returns the configured access-token lifetime.
func (c Client) AccessTokenValiditySeconds() int {
	return c.SettingInt(SettingAccessTokenValidity, 0)
}

// RefreshTokenValiditySeconds returns the configured refresh-token lifetime.
func (c Client) RefreshTokenValiditySeconds() int {
	return c.SettingInt(SettingRefreshTokenValidity, 0)
}
