package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/service"
	"github.com/aussiebroadwan/clientcred/pkg/httpx"
	"github.com/aussiebroadwan/clientcred/pkg/slogx"
)

// AccessCheckHandler answers network allow-list queries from the
// token-issuance component.
type AccessCheckHandler struct {
	AllowListService *service.AllowListService
}

type accessCheckRequest struct {
	ClientID      string `json:"clientId"`
	SourceAddress string `json:"sourceAddress,omitempty"`
}

// HandleCheck handles POST /v1/access-check
//
//	@Summary		Network Access Check
//	@Description	Reports whether a client may authenticate from the given source address. When sourceAddress is omitted the caller's resolved address is used. Policy denials return allowed=false with a reason, never an error status.
//	@Tags			AccessCheck
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token with clients:check scope"
//	@Param			request			body		credsdk.AccessCheckRequest	true	"Access check request"
//	@Success		200				{object}	credsdk.AccessCheckResult	"allowed, reason"
//	@Failure		400				{object}	credsdk.ErrorResponse		"error, error_description"
//	@Failure		404				{object}	credsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/access-check [post].
func (h *AccessCheckHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accessCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	sourceAddr := req.SourceAddress
	if sourceAddr == "" {
		sourceAddr = httpx.RealIP(r)
	}

	result, err := h.AllowListService.Check(ctx, req.ClientID, sourceAddr)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if !result.Allowed {
		slogx.FromContext(ctx).Info("access denied",
			"client_id", req.ClientID, "source_address", sourceAddr, "reason", result.Reason)
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}
