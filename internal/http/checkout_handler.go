package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/domain"
	"golang.org/x/sync/singleflight"
)

type CheckoutHandler struct {
	checkout *checkout.Service
	timeout  time.Duration
	inflight singleflight.Group
}

func NewCheckoutHandler(svc *checkout.Service, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc, timeout: timeout}
}

type SubmitOrderRequestDTO struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	DeliveryDate string `json:"delivery_date"`
}

// GET /api/v1/checkout/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.checkout.Quote())
}

// POST /api/v1/checkout
// Details are validated per request. A valid submission that arrives while
// another one is in flight receives that order instead of placing a second
// one, since both would be built from the same cart.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	details := domain.OrderDetails{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if req.DeliveryDate != "" {
		d, err := parseDeliveryDate(req.DeliveryDate)
		if err != nil {
			respondJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:  "order details are invalid",
				Code:   "validation_failed",
				Fields: map[string]string{"deliveryDate": "delivery date must be YYYY-MM-DD"},
			})
			return
		}
		details.DeliveryDate = d
	}
	if err := h.checkout.ValidateDetails(details); err != nil {
		handleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.timeout)
	defer cancel()

	v, err, shared := h.inflight.Do("submit", func() (interface{}, error) {
		return h.checkout.Submit(ctx, details)
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	if shared {
		w.Header().Set("X-Checkout-Shared", "true")
	}
	respondJSON(w, http.StatusCreated, v.(domain.Order))
}

// parseDeliveryDate accepts a calendar date in the server's zone or a full
// RFC 3339 timestamp.
func parseDeliveryDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(time.DateOnly, raw, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
