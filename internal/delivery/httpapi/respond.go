package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/leadrun/fulfillment-service/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrLeadNotFound),
		errors.Is(err, domain.ErrBrokerNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPreconditionFailed),
		errors.Is(err, domain.ErrRelationshipConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// actorID identifies the operator performing the request. Authentication is
// terminated upstream; the gateway forwards the identity in a header.
func actorID(r *http.Request) string {
	return r.Header.Get("X-Actor-ID")
}
