package domain

import "time"

// NetworkConfig restricts which source networks may authenticate as a
// base identity. Keyed by base identity, shared by every version.
// An empty AllowedCIDRs list means no restriction.
type NetworkConfig struct {
	BaseClientID string
	AllowedCIDRs []string
	ExpiresAt    *time.Time // calendar date; strictly before today denies all versions
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
