package http

import (
	"net/http"
	"time"

	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Deps struct {
	Catalog  *catalog.Catalog
	Cart     *store.CartStore
	Wishlist *store.WishlistStore
	History  *store.OrderHistory
	Checkout *checkout.Service
}

type RouterOptions struct {
	ServiceName        string
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

func NewRouter(d Deps, opts RouterOptions) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "storefront"
	}

	products := NewProductHandler(d.Catalog)
	cart := NewCartHandler(d.Catalog, d.Cart)
	wishlist := NewWishlistHandler(d.Catalog, d.Wishlist)
	checkoutHandler := NewCheckoutHandler(d.Checkout, opts.RequestTimeout)
	orders := NewOrdersHandler(d.History)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(opts.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(MaxBodySize(opts.MaxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", products.Categories)
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/featured", products.Featured)
			r.Get("/{id}", products.Get)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.GetCart)
			r.Delete("/", cart.ClearCart)
			r.Post("/items", cart.AddItem)
			r.Get("/items/{product_id}", cart.GetQuantity)
			r.Put("/items/{product_id}", cart.UpdateQuantity)
			r.Delete("/items/{product_id}", cart.RemoveItem)
		})
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlist.GetWishlist)
			r.Delete("/", wishlist.ClearWishlist)
			r.Post("/toggle", wishlist.Toggle)
			r.Post("/items", wishlist.AddItem)
			r.Get("/items/{product_id}", wishlist.Contains)
			r.Delete("/items/{product_id}", wishlist.RemoveItem)
		})
		r.Get("/checkout/quote", checkoutHandler.Quote)
		r.Post("/checkout", checkoutHandler.Submit)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.ListOrders)
			r.Get("/{id}", orders.GetOrder)
		})
	})

	return otelhttp.NewHandler(r, opts.ServiceName)
}
