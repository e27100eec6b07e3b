package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/store"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError maps domain errors onto HTTP statuses.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	var perr *domain.PersistenceError

	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "order details are invalid",
			Code:   "validation_failed",
			Fields: verr.Fields,
		})
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, store.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "request timed out")
	case errors.As(err, &perr):
		slog.ErrorContext(r.Context(), "persistence failure", "request_id", getRequestID(r.Context()), "error", err)
		respondJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:   "storage unavailable",
			Code:    "storage_unavailable",
			Details: perr.Op + " " + perr.Key,
		})
	default:
		slog.ErrorContext(r.Context(), "request failed", "request_id", getRequestID(r.Context()), "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
