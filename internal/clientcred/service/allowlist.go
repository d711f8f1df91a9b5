package service

import (
	"context"
	"errors"
	"net/netip"
	"strings"
	"time"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/store"
	"github.com/aussiebroadwan/clientcred/pkg/slogx"
)

// Denial reasons reported to the token issuer.
const (
	ReasonExpired           = "expired"
	ReasonNetworkNotAllowed = "network_not_allowed"
)

// CheckResult is the outcome of a network access check. Policy denials
// are data, not errors.
type CheckResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// AllowListService evaluates the per-base-identity network restriction.
// The token issuer calls Check after authenticating a client secret and
// before minting a client-credentials token.
type AllowListService struct {
	Store store.Store
}

func NewAllowListService(st store.Store) *AllowListService {
	return &AllowListService{Store: st}
}

// Check decides whether sourceAddr may authenticate as clientID. A client
// with no network config, or an empty CIDR list, is unrestricted. A config
// whose expiry date is strictly before today denies every version of the
// base identity regardless of network. Successful checks feed the
// per-version last-accessed timestamp.
func (s *AllowListService) Check(ctx context.Context, clientID, sourceAddr string) (CheckResult, error) {
	l := slogx.FromContext(ctx)

	c, err := s.Store.Clients().GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CheckResult{}, ErrClientNotFound
		}
		return CheckResult{}, err
	}

	nc, err := s.Store.NetworkConfigs().GetByBase(ctx, c.BaseClientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.allow(ctx, clientID)
		}
		return CheckResult{}, err
	}
	if len(nc.AllowedCIDRs) == 0 {
		return s.allow(ctx, clientID)
	}

	if nc.ExpiresAt != nil && nc.ExpiresAt.Before(time.Now().UTC().Truncate(24*time.Hour)) {
		l.Warn("access check denied", "client_id", clientID, "reason", ReasonExpired)
		return CheckResult{Allowed: false, Reason: ReasonExpired}, nil
	}

	addr, err := netip.ParseAddr(sourceAddr)
	if err != nil {
		return CheckResult{}, &ValidationError{Field: "sourceAddress", Message: "not a valid IP address"}
	}
	addr = addr.Unmap()

	for _, cidr := range nc.AllowedCIDRs {
		if cidrContains(cidr, addr) {
			return s.allow(ctx, clientID)
		}
	}

	l.Warn("access check denied",
		"client_id", clientID,
		"source_addr", sourceAddr,
		"reason", ReasonNetworkNotAllowed,
	)
	return CheckResult{Allowed: false, Reason: ReasonNetworkNotAllowed}, nil
}

func (s *AllowListService) allow(ctx context.Context, clientID string) (CheckResult, error) {
	if err := s.Store.Clients().TouchLastAccessed(ctx, clientID, time.Now().UTC()); err != nil &&
		!errors.Is(err, store.ErrNotFound) {
		return CheckResult{}, err
	}
	return CheckResult{Allowed: true}, nil
}

// cidrContains reports whether addr falls inside a configured entry. Bare
// addresses behave as single-host ranges.
func cidrContains(cidr string, addr netip.Addr) bool {
	if !strings.Contains(cidr, "/") {
		single, err := netip.ParseAddr(strings.TrimSpace(cidr))
		return err == nil && single.Unmap() == addr
	}
	prefix, err := netip.ParsePrefix(strings.TrimSpace(cidr))
	return err == nil && prefix.Contains(addr)
}
