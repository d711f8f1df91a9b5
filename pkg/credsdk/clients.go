package credsdk

import (
	"context"
	"net/http"
	"net/url"
)

// CreateClient registers a new base client and returns its credentials.
// The raw secret is only available in this response.
func (c *Client) CreateClient(ctx context.Context, req CreateClientRequest) (*Credentials, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/base-clients", req)
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := decodeJSON(resp, &creds, http.StatusOK); err != nil {
		return nil, err
	}
	return &creds, nil
}

// ListClients returns one summary row per base identity, optionally
// filtered by role, grant type, or deployment client type.
func (c *Client) ListClients(ctx context.Context, filter ListClientsFilter) ([]ClientSummary, error) {
	q := url.Values{}
	if filter.Role != "" {
		q.Set("role", filter.Role)
	}
	if filter.GrantType != "" {
		q.Set("grantType", filter.GrantType)
	}
	if filter.ClientType != "" {
		q.Set("clientType", filter.ClientType)
	}

	path := "/v1/base-clients"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var summaries []ClientSummary
	if err := decodeJSON(resp, &summaries, http.StatusOK); err != nil {
		return nil, err
	}
	return summaries, nil
}

// DuplicateClient mints a new credential version for an existing base
// identity and returns the fresh credentials.
func (c *Client) DuplicateClient(ctx context.Context, clientID string) (*Credentials, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/clients/"+url.PathEscape(clientID)+"/duplicate", nil)
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := decodeJSON(resp, &creds, http.StatusOK); err != nil {
		return nil, err
	}
	return &creds, nil
}

// DeleteClient removes a single credential version.
func (c *Client) DeleteClient(ctx context.Context, clientID string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/v1/clients/"+url.PathEscape(clientID), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ClientExists looks up a single credential version.
func (c *Client) ClientExists(ctx context.Context, clientID string) (*ExistsInfo, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/clients/exists/"+url.PathEscape(clientID), nil)
	if err != nil {
		return nil, err
	}

	var info ExistsInfo
	if err := decodeJSON(resp, &info, http.StatusOK); err != nil {
		return nil, err
	}
	return &info, nil
}

// ListDuplicates returns every live version for the given id's base
// identity, canonical first.
func (c *Client) ListDuplicates(ctx context.Context, clientID string) ([]VersionInfo, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/clients/duplicates/"+url.PathEscape(clientID), nil)
	if err != nil {
		return nil, err
	}

	var versions []VersionInfo
	if err := decodeJSON(resp, &versions, http.StatusOK); err != nil {
		return nil, err
	}
	return versions, nil
}

// MigrateClient upserts a client carried over from the legacy system.
func (c *Client) MigrateClient(ctx context.Context, req MigrationRequest) (*ClientDetails, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/migrate-client", req)
	if err != nil {
		return nil, err
	}

	var details ClientDetails
	if err := decodeJSON(resp, &details, http.StatusOK); err != nil {
		return nil, err
	}
	return &details, nil
}

// AddDeployment attaches deployment metadata to a client's base
// identity. Adding when metadata already exists is a 409 conflict.
func (c *Client) AddDeployment(ctx context.Context, clientID string, req DeploymentRequest) error {
	resp, err := c.doJSON(ctx, http.MethodPut, "/v1/clients/"+url.PathEscape(clientID)+"/deployment", req)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// CheckAccess asks whether a client may authenticate from the given
// source address. Policy denials are reported in the result, not as
// errors.
func (c *Client) CheckAccess(ctx context.Context, req AccessCheckRequest) (*AccessCheckResult, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/access-check", req)
	if err != nil {
		return nil, err
	}

	var result AccessCheckResult
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}
