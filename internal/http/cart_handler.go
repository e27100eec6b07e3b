package http

import (
	"encoding/json"
	"net/http"

	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	catalog *catalog.Catalog
	cart    *store.CartStore
}

func NewCartHandler(c *catalog.Catalog, cart *store.CartStore) *CartHandler {
	return &CartHandler{catalog: c, cart: cart}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity"`
}

type CartResponseDTO struct {
	Items     []domain.CartLine `json:"items"`
	ItemCount int               `json:"itemCount"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
}

func cartResponse(c domain.Cart) CartResponseDTO {
	items := c.Snapshot()
	if items == nil {
		items = []domain.CartLine{}
	}
	return CartResponseDTO{Items: items, ItemCount: c.ItemCount(), Subtotal: c.Subtotal()}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cartResponse(h.cart.Cart()))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	p, err := h.catalog.Get(req.ProductID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, cartResponse(h.cart.AddItem(r.Context(), p)))
}

// PUT /api/v1/cart/items/{product_id}
// A quantity of zero or less removes the line. Unknown ids leave the cart as is.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity is required")
		return
	}

	c := h.cart.UpdateQuantity(r.Context(), chi.URLParam(r, "product_id"), *req.Quantity)
	respondJSON(w, http.StatusOK, cartResponse(c))
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c := h.cart.RemoveItem(r.Context(), chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, cartResponse(c))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cartResponse(h.cart.Clear(r.Context())))
}

type QuantityResponseDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// GET /api/v1/cart/items/{product_id}
func (h *CartHandler) GetQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "product_id")
	respondJSON(w, http.StatusOK, QuantityResponseDTO{ProductID: id, Quantity: h.cart.Quantity(id)})
}
