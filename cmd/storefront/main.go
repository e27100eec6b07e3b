package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/storefront/internal/catalog"
	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/config"
	"github.com/fjod/storefront/internal/events"
	h "github.com/fjod/storefront/internal/http"
	"github.com/fjod/storefront/internal/storage"
	"github.com/fjod/storefront/internal/store"
	"github.com/fjod/storefront/pkg/logger"
	"github.com/fjod/storefront/pkg/telemetry"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("storefront stopped", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	slog.SetDefault(log)

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		return err
	}
	defer shutdownTracing(context.Background())

	var provider catalog.Provider = catalog.EmbeddedProvider{}
	if cfg.CatalogPath != "" {
		provider = catalog.FileProvider{Path: cfg.CatalogPath}
	}
	products, err := catalog.Load(ctx, provider)
	if err != nil {
		return err
	}
	log.Info("catalog loaded", "products", products.Len(), "source", catalogSource(cfg.CatalogPath))

	kv, err := storage.Open(ctx, cfg.StorageOptions(), log)
	if err != nil {
		return err
	}
	defer kv.Close()
	log.Info("snapshot storage ready", "backend", cfg.StorageBackend)

	cart := store.OpenCartStore(ctx, kv, log)
	wishlist := store.OpenWishlistStore(ctx, kv, log)
	history := store.OpenOrderHistory(ctx, kv, log)

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaTopic, cfg.KafkaBrokers...)
		log.Info("publishing order events", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}
	defer publisher.Close()

	svc := checkout.NewService(cart, history, log,
		checkout.WithPricing(cfg.Pricing()),
		checkout.WithPublisher(publisher),
		checkout.WithProcessingDelay(cfg.ProcessingDelay),
	)

	handler := h.NewRouter(h.Deps{
		Catalog:  products,
		Cart:     cart,
		Wishlist: wishlist,
		History:  history,
		Checkout: svc,
	}, h.RouterOptions{
		ServiceName:        cfg.ServiceName,
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("storefront starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("server exited")
	return nil
}

func catalogSource(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
