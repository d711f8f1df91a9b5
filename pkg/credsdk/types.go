package credsdk

import "time"

// ErrorResponse is the standard error body returned by the admin API.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "client_not_found")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// DeploymentRequest carries deployment metadata for a base client id.
// It appears inside create and migrate payloads and as the body of the
// deployment upsert endpoint.
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

// CreateClientRequest registers a new base client.
type CreateClientRequest struct {
	// ClientID is the requested base identity (max 100 chars).
	ClientID string `json:"clientId"`

	// ClientName is an optional display name; defaults to the client id.
	ClientName string `json:"clientName,omitempty"`

	// GrantType is "client_credentials" (default) or "authorization_code".
	GrantType string `json:"grantType,omitempty"`

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
// secret is returned exactly once and cannot be fetched again.
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

// VersionInfo is one row of the duplicates listing, ordered canonical
// first and then by version number.
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

// ClientSummary is one row of the base-client listing.
type ClientSummary struct {
	BaseClientID string `json:"baseClientId"`
	ClientType   string `json:"clientType,omitempty"`
	TeamName     string `json:"teamName,omitempty"`
	GrantType    string `json:"grantType"`

	// Roles is the newline-joined, sorted union of authorities across all
	// live versions of the base identity.
	Roles string `json:"roles"`

	// Count is the number of live credential versions.
	Count int `json:"count"`

	// Expired reports whether the network allow-list window has lapsed.
	Expired bool `json:"expired"`
}

// ListClientsFilter narrows the base-client listing. Zero values mean
// no filtering on that dimension.
type ListClientsFilter struct {
	Role       string
	GrantType  string
	ClientType string
}

// AccessCheckRequest asks whether a client may authenticate from the
// given source address. SourceAddress is optional; the server falls
// back to the caller's resolved address.
type AccessCheckRequest struct {
	ClientID      string `json:"clientId"`
	SourceAddress string `json:"sourceAddress,omitempty"`
}

// AccessCheckResult is the access-check verdict. Reason is set only on
// denial ("expired" or "network_not_allowed").
type AccessCheckResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
