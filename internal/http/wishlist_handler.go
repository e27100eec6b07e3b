package http

import (
	"encoding/json"
	"net/http"

	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/store"
	"github.com/go-chi/chi/v5"
)

type WishlistHandler struct {
	catalog  *catalog.Catalog
	wishlist *store.WishlistStore
}

func NewWishlistHandler(c *catalog.Catalog, w *store.WishlistStore) *WishlistHandler {
	return &WishlistHandler{catalog: c, wishlist: w}
}

type WishlistResponseDTO struct {
	Items []domain.Product `json:"items"`
	Count int              `json:"count"`
}

type MembershipResponseDTO struct {
	ProductID string `json:"product_id"`
	InList    bool   `json:"in_wishlist"`
}

func wishlistResponse(w domain.Wishlist) WishlistResponseDTO {
	items := make([]domain.Product, len(w.Items))
	for i, p := range w.Items {
		items[i] = p.Clone()
	}
	return WishlistResponseDTO{Items: items, Count: w.Count()}
}

// GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	items := h.wishlist.Items()
	respondJSON(w, http.StatusOK, WishlistResponseDTO{Items: items, Count: len(items)})
}

// POST /api/v1/wishlist/items
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(w, http.StatusCreated, wishlistResponse(h.wishlist.Add(r.Context(), p)))
}

// GET /api/v1/wishlist/items/{product_id}
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "product_id")
	respondJSON(w, http.StatusOK, MembershipResponseDTO{ProductID: id, InList: h.wishlist.Contains(id)})
}

// DELETE /api/v1/wishlist/items/{product_id}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	wl := h.wishlist.Remove(r.Context(), chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, wishlistResponse(wl))
}

// DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, wishlistResponse(h.wishlist.Clear(r.Context())))
}

// POST /api/v1/wishlist/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(w, http.StatusOK, wishlistResponse(h.wishlist.Toggle(r.Context(), p)))
}
