package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/service"
	"github.com/aussiebroadwan/clientcred/pkg/httpx"
	"github.com/aussiebroadwan/clientcred/pkg/slogx"
)

// ClientsHandler handles all client lifecycle endpoints.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// HandleCreate handles POST /v1/base-clients
//
//	@Summary		Register Client
//	@Description	Registers a new base client and mints its secret. The raw secret is returned exactly once.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token with clients:write scope"
//	@Param			request			body		credsdk.CreateClientRequest	true	"Client registration request"
//	@Success		200				{object}	credsdk.Credentials			"clientId, clientSecret and base64 forms"
//	@Failure		400				{object}	credsdk.ErrorResponse		"error, error_description"
//	@Failure		401				{object}	credsdk.ErrorResponse		"error, error_description"
//	@Failure		409				{object}	credsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/base-clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req service.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	creds, err := h.ClientService.Create(ctx, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Info("client registered", "client_id", creds.ClientID)
	httpx.WriteJSON(w, http.StatusOK, creds)
}

// HandleList handles GET /v1/base-clients
//
//	@Summary		List Clients
//	@Description	Returns one summary row per base client, optionally filtered by role, grant type, or deployment client type.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string					true	"Bearer token with clients:read scope"
//	@Param			role			query		string					false	"Filter by granted role"
//	@Param			grantType		query		string					false	"Filter by grant type"
//	@Param			clientType		query		string					false	"Filter by deployment client type"
//	@Success		200				{array}		credsdk.ClientSummary	"Base client summaries"
//	@Failure		401				{object}	credsdk.ErrorResponse	"error, error_description"
//	@Failure		500				{object}	credsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/base-clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	summaries, err := h.ClientService.List(r.Context(), q.Get("role"), q.Get("grantType"), q.Get("clientType"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if summaries == nil {
		summaries = []service.ClientSummary{}
	}

	httpx.WriteJSON(w, http.StatusOK, summaries)
}

// HandleDuplicate handles POST /v1/clients/{clientId}/duplicate
//
//	@Summary		Duplicate Client
//	@Description	Mints a new credential version for an existing base client. Capped at three live versions.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string					true	"Bearer token with clients:write scope"
//	@Param			clientId		path		string					true	"Client id or any of its versions"
//	@Success		200				{object}	credsdk.Credentials		"Fresh credentials for the new version"
//	@Failure		404				{object}	credsdk.ErrorResponse	"error, error_description"
//	@Failure		409				{object}	credsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/clients/{clientId}/duplicate [post].
func (h *ClientsHandler) HandleDuplicate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientID := r.PathValue("clientId")

	creds, err := h.ClientService.Duplicate(ctx, clientID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("client duplicated", "client_id", creds.ClientID)
	httpx.WriteJSON(w, http.StatusOK, creds)
}

// HandleDelete handles DELETE /v1/clients/{clientId}
//
//	@Summary		Delete Client
//	@Description	Removes one credential version. Deleting the last version also removes the shared network config and deployment details.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header	string	true	"Bearer token with clients:write scope"
//	@Param			clientId		path	string	true	"Client id of the version to remove"
//	@Success		204				"Client deleted successfully"
//	@Failure		404				{object}	credsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/clients/{clientId} [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")

	if err := h.ClientService.Delete(r.Context(), clientID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleExists handles GET /v1/clients/exists/{clientId}
//
//	@Summary		Client Exists
//	@Description	Looks up one credential version and its configured access-token validity in minutes.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string					true	"Bearer token with clients:read scope"
//	@Param			clientId		path		string					true	"Exact client id"
//	@Success		200				{object}	credsdk.ExistsInfo		"clientId, accessTokenValidityMinutes"
//	@Failure		404				{object}	credsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/clients/exists/{clientId} [get].
func (h *ClientsHandler) HandleExists(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")

	info, err := h.ClientService.Exists(r.Context(), clientID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, info)
}

// HandleDuplicates handles GET /v1/clients/duplicates/{clientId}
//
//	@Summary		List Client Versions
//	@Description	Returns every live credential version for the given id's base client, canonical first then by version number.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string					true	"Bearer token with clients:read scope"
//	@Param			clientId		path		string					true	"Client id or any of its versions"
//	@Success		200				{array}		credsdk.VersionInfo		"clientId, created, lastAccessed per version"
//	@Failure		404				{object}	credsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/clients/duplicates/{clientId} [get].
func (h *ClientsHandler) HandleDuplicates(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")

	versions, err := h.ClientService.ListDuplicates(r.Context(), clientID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, versions)
}

// HandleDeployment handles PUT /v1/clients/{clientId}/deployment
//
//	@Summary		Add Deployment Details
//	@Description	Attaches deployment metadata to a client's base identity. Conflicts when details already exist.
//	@Tags			Clients
//	@Accept			json
//	@Security		BearerAuth
//	@Param			Authorization	header	string						true	"Bearer token with clients:write scope"
//	@Param			clientId		path	string						true	"Client id or any of its versions"
//	@Param			request			body	credsdk.DeploymentRequest	true	"Deployment metadata"
//	@Success		204				"Deployment details stored"
//	@Failure		400				{object}	credsdk.ErrorResponse	"error, error_description"
//	@Failure		404				{object}	credsdk.ErrorResponse	"error, error_description"
//	@Failure		409				{object}	credsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/clients/{clientId}/deployment [put].
func (h *ClientsHandler) HandleDeployment(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("clientId")

	var req service.DeploymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	if err := h.ClientService.AddDeployment(r.Context(), clientID, req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
