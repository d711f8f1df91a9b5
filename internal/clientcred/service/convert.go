package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/domain"
	"github.com/aussiebroadwan/clientcred/pkg/clientid"
	"github.com/aussiebroadwan/clientcred/pkg/idx"
)

const (
	defaultScope = "read"

	// Assigned to authorization-code clients registered without a redirect
	// URI; they are expected to replace it before go-live.
	defaultRedirectURI = "http://localhost:3000/callback"
)

// DeploymentRequest carries deployment metadata inside create and migrate
// payloads and the deployment upsert endpoint.
type DeploymentRequest struct {
	ClientType  string `json:"clientType,omitempty"`
	Team        string `json:"team,omitempty"`
	TeamContact string `json:"teamContact,omitempty"`
	TeamSlack   string `json:"teamSlack,omitempty"`
	Hosting     string `json:"hosting,omitempty"`
	Namespace   string `json:"namespace,omitempty"`
	SecretName  string `json:"secretName,omitempty"`
	ClientIDKey string `json:"clientIdKey,omitempty"`
	SecretKey   string `json:"secretKey,omitempty"`
}

// CreateClientRequest registers a new canonical client.
type CreateClientRequest struct {
	ClientID                    string             `json:"clientId"`
	ClientName                  string             `json:"clientName,omitempty"`
	GrantType                   string             `json:"grantType,omitempty"`
	Scopes                      []string           `json:"scopes,omitempty"`
	Authorities                 []string           `json:"authorities,omitempty"`
	AccessTokenValiditySeconds  int                `json:"accessTokenValiditySeconds,omitempty"`
	RefreshTokenValiditySeconds int                `json:"refreshTokenValiditySeconds,omitempty"`
	RedirectURIs                []string           `json:"redirectUris,omitempty"`
	DatabaseUsername            string             `json:"databaseUserName,omitempty"`
	TicketNumber                string             `json:"ticketNumber,omitempty"`
	JWTFields                   string             `json:"jwtFields,omitempty"`
	MFA                         string             `json:"mfa,omitempty"`
	MFARememberMe               bool               `json:"mfaRememberMe,omitempty"`
	ResourceIDs                 []string           `json:"resourceIds,omitempty"`
	AllowedIPs                  []string           `json:"ips,omitempty"`
	ValidDays                   int                `json:"validDays,omitempty"`
	Deployment                  *DeploymentRequest `json:"deployment,omitempty"`
}

// MigrationRequest upserts a client carried over from the legacy system.
// The raw secret arrives in the payload rather than being minted here.
type MigrationRequest struct {
	ClientID                   string             `json:"clientId"`
	ClientSecret               string             `json:"clientSecret"`
	Scopes                     []string           `json:"scopes,omitempty"`
	Authorities                []string           `json:"authorities,omitempty"`
	AllowedIPs                 []string           `json:"ips,omitempty"`
	TicketNumber               string             `json:"ticketNumber,omitempty"`
	DatabaseUsername           string             `json:"databaseUserName,omitempty"`
	ValidDays                  int                `json:"validDays,omitempty"`
	AccessTokenValidityMinutes int                `json:"accessTokenValidityMinutes,omitempty"`
	JWTFields                  string             `json:"jwtFields,omitempty"`
	MFA                        string             `json:"mfa,omitempty"`
	MFARememberMe              bool               `json:"mfaRememberMe,omitempty"`
	ResourceIDs                []string           `json:"resourceIds,omitempty"`
	RedirectURIs               []string           `json:"redirectUris,omitempty"`
	Deployment                 *DeploymentRequest `json:"deployment,omitempty"`
}

// Credentials is the one-shot response of create and duplicate. The raw
// secret appears here and nowhere else.
type Credentials struct {
	ClientID           string `json:"clientId"`
	ClientSecret       string `json:"clientSecret"`
	Base64ClientID     string `json:"base64ClientId"`
	Base64ClientSecret string `json:"base64ClientSecret"`
}

// ExistsInfo is the response of the exists lookup.
type ExistsInfo struct {
	ClientID                   string `json:"clientId"`
	AccessTokenValidityMinutes int    `json:"accessTokenValidityMinutes"`
}

// VersionInfo is one row of the duplicates listing.
type VersionInfo struct {
	ClientID     string    `json:"clientId"`
	Created      time.Time `json:"created"`
	LastAccessed time.Time `json:"lastAccessed"`
}

// ClientDetails is the response of migrate-upsert.
type ClientDetails struct {
	ClientID                    string   `json:"clientId"`
	Scopes                      []string `json:"scopes"`
	Authorities                 []string `json:"authorities"`
	AccessTokenValiditySeconds  int      `json:"accessTokenValiditySeconds"`
	RefreshTokenValiditySeconds int      `json:"refreshTokenValiditySeconds"`
	JWTFields                   string   `json:"jwtFields,omitempty"`
	MFA                         string   `json:"mfa"`
	MFARememberMe               bool     `json:"mfaRememberMe"`
	DatabaseUsername            string   `json:"databaseUserName,omitempty"`
	TicketNumber                string   `json:"ticketNumber,omitempty"`
	ResourceIDs                 []string `json:"resourceIds"`
	RedirectURIs                []string `json:"redirectUris"`
}

// ClientSummary is one row of the base-client listing, aggregated per
// base identity rather than per version.
type ClientSummary struct {
	BaseClientID string `json:"baseClientId"`
	ClientType   string `json:"clientType,omitempty"`
	TeamName     string `json:"teamName,omitempty"`
	GrantType    string `json:"grantType"`
	Roles        string `json:"roles"` // newline-joined, sorted
	Count        int    `json:"count"`
	Expired      bool   `json:"expired"`
}

// newClientFromCreate builds the canonical record for a fresh registration.
// The full requested client id is the base identity, so bases that happen
// to end in digits never get mis-split later.
func newClientFromCreate(req CreateClientRequest, now time.Time) domain.Client {
	scopes := req.Scopes
	if len(scopes) == 0 {
		scopes = []string{defaultScope}
	}

	grant := req.GrantType
	if grant == "" {
		grant = domain.GrantClientCredentials
	}

	uris := req.RedirectURIs
	if grant == domain.GrantAuthorizationCode && len(uris) == 0 {
		uris = []string{defaultRedirectURI}
	}

	name := req.ClientName
	if name == "" {
		name = req.ClientID
	}

	return domain.Client{
		ID:            idx.New().String(),
		ClientID:      req.ClientID,
		BaseClientID:  req.ClientID,
		Version:       0,
		Canonical:     true,
		Name:          name,
		AuthMethod:    domain.AuthMethodSecretBasic,
		GrantType:     grant,
		RedirectURIs:  uris,
		Scopes:        scopes,
		Settings:      buildSettings(req.AccessTokenValiditySeconds, req.RefreshTokenValiditySeconds, req.DatabaseUsername, req.TicketNumber),
		JWTFields:     req.JWTFields,
		MFA:           domain.ParseMFAPolicy(req.MFA),
		MFARememberMe: req.MFARememberMe,
		ResourceIDs:   req.ResourceIDs,
		IssuedAt:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// newClientFromMigration builds a record for a legacy client. Migrated ids
// may already carry a version suffix, so base and version are derived by
// splitting the inbound id. Grant type is always client_credentials.
func newClientFromMigration(req MigrationRequest, now time.Time) domain.Client {
	base, version := clientid.Split(req.ClientID)

	scopes := req.Scopes
	if len(scopes) == 0 {
		scopes = []string{defaultScope}
	}

	return domain.Client{
		ID:            idx.New().String(),
		ClientID:      req.ClientID,
		BaseClientID:  base,
		Version:       version,
		Canonical:     version == 0,
		Name:          base,
		AuthMethod:    domain.AuthMethodSecretBasic,
		GrantType:     domain.GrantClientCredentials,
		RedirectURIs:  req.RedirectURIs,
		Scopes:        scopes,
		Settings:      buildSettings(req.AccessTokenValidityMinutes*60, 0, req.DatabaseUsername, req.TicketNumber),
		JWTFields:     req.JWTFields,
		MFA:           domain.ParseMFAPolicy(req.MFA),
		MFARememberMe: req.MFARememberMe,
		ResourceIDs:   req.ResourceIDs,
		IssuedAt:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func buildSettings(accessSeconds, refreshSeconds int, dbUser, ticket string) map[string]string {
	settings := map[string]string{}
	if accessSeconds > 0 {
		settings[domain.SettingAccessTokenValidity] = strconv.Itoa(accessSeconds)
	}
	if refreshSeconds > 0 {
		settings[domain.SettingRefreshTokenValidity] = strconv.Itoa(refreshSeconds)
	}
	if dbUser != "" {
		settings[domain.SettingDatabaseUsername] = dbUser
	}
	if ticket != "" {
		settings[domain.SettingTicketNumber] = ticket
	}
	return settings
}

// normalizeAuthorities maps inbound role strings to their stored form:
// trimmed, upper-cased, and carrying exactly one ROLE_ prefix.
func normalizeAuthorities(authorities []string) []string {
	out := make([]string, 0, len(authorities))
	seen := make(map[string]struct{}, len(authorities))
	for _, a := range authorities {
		a = strings.ToUpper(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if !strings.HasPrefix(a, "ROLE_") {
			a = "ROLE_" + a
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// expiryDate computes the network-config end date from a validity window.
// The window includes today, so validDays=1 expires at end of today.
func expiryDate(validDays int, now time.Time) *time.Time {
	if validDays <= 0 {
		return nil
	}
	d := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, validDays-1)
	return &d
}

func deploymentFromRequest(baseClientID string, req DeploymentRequest) domain.Deployment {
	return domain.Deployment{
		BaseClientID: baseClientID,
		ClientType:   strings.ToUpper(strings.TrimSpace(req.ClientType)),
		Team:         req.Team,
		TeamContact:  req.TeamContact,
		TeamSlack:    req.TeamSlack,
		Hosting:      strings.ToUpper(strings.TrimSpace(req.Hosting)),
		Namespace:    req.Namespace,
		SecretName:   req.SecretName,
		ClientIDKey:  req.ClientIDKey,
		SecretKey:    req.SecretKey,
	}
}

func detailsFromClient(c domain.Client, authorities []string) ClientDetails {
	return ClientDetails{
		ClientID:                    c.ClientID,
		Scopes:                      c.Scopes,
		Authorities:                 authorities,
		AccessTokenValiditySeconds:  c.AccessTokenValiditySeconds(),
		RefreshTokenValiditySeconds: c.RefreshTokenValiditySeconds(),
		JWTFields:                   c.JWTFields,
		MFA:                         string(c.MFA),
		MFARememberMe:               c.MFARememberMe,
		DatabaseUsername:            c.Settings[domain.SettingDatabaseUsername],
		TicketNumber:                c.Settings[domain.SettingTicketNumber],
		ResourceIDs:                 c.ResourceIDs,
		RedirectURIs:                c.RedirectURIs,
	}
}
