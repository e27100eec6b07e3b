package http

import (
	"net/http"

	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(c *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
}

// GET /api/v1/products?category=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.ByCategory(r.URL.Query().Get("category"))
	respondJSON(w, http.StatusOK, ProductsResponse{Products: products, Count: len(products)})
}

// GET /api/v1/products/featured
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.Featured()
	respondJSON(w, http.StatusOK, ProductsResponse{Products: products, Count: len(products)})
}

// GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// GET /api/v1/categories
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]domain.Category{"categories": h.catalog.Categories()})
}
