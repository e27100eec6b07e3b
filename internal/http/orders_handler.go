package http

import (
	"net/http"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/store"
	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	history *store.OrderHistory
}

func NewOrdersHandler(history *store.OrderHistory) *OrdersHandler {
	return &OrdersHandler{history: history}
}

type OrdersResponseDTO struct {
	Orders []domain.Order `json:"orders"`
	Count  int            `json:"count"`
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.history.List()
	respondJSON(w, http.StatusOK, OrdersResponseDTO{Orders: orders, Count: len(orders)})
}

// GET /api/v1/orders/{id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.history.Get(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}
