package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/service"
	"github.com/aussiebroadwan/clientcred/pkg/httpx"
	"github.com/aussiebroadwan/clientcred/pkg/slogx"
)

// MigrationHandler handles the legacy-client migration endpoint.
type MigrationHandler struct {
	ClientService *service.ClientService
}

// HandleMigrate handles POST /v1/migrate-client
//
//	@Summary		Migrate Client
//	@Description	Upserts a client carried over from the legacy system. Unknown ids are created with the supplied secret; known ids are edited in place, keeping their identity and secret.
//	@Tags			Migration
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token with clients:write scope"
//	@Param			request			body		credsdk.MigrationRequest	true	"Migration payload"
//	@Success		200				{object}	credsdk.ClientDetails		"Resulting client configuration"
//	@Failure		400				{object}	credsdk.ErrorResponse		"error, error_description"
//	@Failure		409				{object}	credsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/migrate-client [post].
func (h *MigrationHandler) HandleMigrate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.MigrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	details, err := h.ClientService.MigrateUpsert(ctx, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("client migrated", "client_id", details.ClientID)
	httpx.WriteJSON(w, http.StatusOK, details)
}
