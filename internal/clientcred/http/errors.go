package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/clientcred/internal/clientcred/service"
	"github.com/aussiebroadwan/clientcred/pkg/credsdk"
	"github.com/aussiebroadwan/clientcred/pkg/httpx"
	"github.com/aussiebroadwan/clientcred/pkg/slogx"
)

// writeServiceError maps service-layer errors onto the API error
// contract: validation 400, unknown client 404, conflicts 409,
// everything else an opaque 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		httpx.WriteJSON(w, http.StatusBadRequest, credsdk.ErrorResponse{
			Error:            credsdk.ErrorCodeInvalidRequest,
			ErrorDescription: verr.Error(),
		})

	case errors.Is(err, service.ErrClientNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, credsdk.ErrorResponse{
			Error:            credsdk.ErrorCodeClientNotFound,
			ErrorDescription: "Client not found",
		})

	case errors.Is(err, service.ErrClientAlreadyExists):
		httpx.WriteJSON(w, http.StatusConflict, credsdk.ErrorResponse{
			Error:            credsdk.ErrorCodeClientAlreadyExists,
			ErrorDescription: "Client with this id already exists",
		})

	case errors.Is(err, service.ErrVersionLimit):
		httpx.WriteJSON(w, http.StatusConflict, credsdk.ErrorResponse{
			Error:            credsdk.ErrorCodeVersionLimit,
			ErrorDescription: "Client already has the maximum number of credential versions",
		})

	case errors.Is(err, service.ErrDeploymentExists):
		httpx.WriteJSON(w, http.StatusConflict, credsdk.ErrorResponse{
			Error:            credsdk.ErrorCodeDeploymentExists,
			ErrorDescription: "Client already has deployment details",
		})

	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, credsdk.ErrorResponse{
			Error:            credsdk.ErrorCodeServerError,
			ErrorDescription: "Internal server error",
		})
	}
}

func writeInvalidBody(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, credsdk.ErrorResponse{
		Error:            credsdk.ErrorCodeInvalidRequest,
		ErrorDescription: "Invalid JSON in request body",
	})
}
