// Package config loads process settings from an optional YAML file and then
// applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fjod/storefront/internal/checkout"
	"github.com/fjod/storefront/internal/storage"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceName string

	HTTPPort           int
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64

	LogLevel  string
	LogFormat string

	CatalogPath string

	StorageBackend   string
	DataDir          string
	RedisURL         string
	RedisPrefix      string
	MongoURI         string
	MongoDatabase    string
	SQLDSN           string
	SnapshotTTL      time.Duration
	BreakerFailures  int
	BreakerOpenAfter time.Duration

	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	ProcessingDelay       time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	OTLPEndpoint string
	OTLPInsecure bool
}

type configFile struct {
	Service struct {
		Name               string `yaml:"name"`
		HTTPPort           int    `yaml:"http_port"`
		RequestTimeout     string `yaml:"request_timeout"`
		ShutdownTimeout    string `yaml:"shutdown_timeout"`
		MaxRequestBodySize int64  `yaml:"max_request_body_size"`
	} `yaml:"service"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Catalog struct {
		Path string `yaml:"path"`
	} `yaml:"catalog"`
	Storage struct {
		Backend          string `yaml:"backend"`
		DataDir          string `yaml:"data_dir"`
		RedisURL         string `yaml:"redis_url"`
		RedisPrefix      string `yaml:"redis_prefix"`
		MongoURI         string `yaml:"mongo_uri"`
		MongoDatabase    string `yaml:"mongo_database"`
		SQLDSN           string `yaml:"sql_dsn"`
		SnapshotTTL      string `yaml:"snapshot_ttl"`
		BreakerFailures  int    `yaml:"breaker_failures"`
		BreakerOpenAfter string `yaml:"breaker_open_after"`
	} `yaml:"storage"`
	Checkout struct {
		TaxRate               string `yaml:"tax_rate"`
		FreeShippingThreshold string `yaml:"free_shipping_threshold"`
		FlatShippingFee       string `yaml:"flat_shipping_fee"`
		ProcessingDelay       string `yaml:"processing_delay"`
	} `yaml:"checkout"`
	Events struct {
		KafkaBrokers []string `yaml:"kafka_brokers"`
		KafkaTopic   string   `yaml:"kafka_topic"`
	} `yaml:"events"`
	Telemetry struct {
		OTLPEndpoint string `yaml:"otlp_endpoint"`
		OTLPInsecure *bool  `yaml:"otlp_insecure"`
	} `yaml:"telemetry"`
}

func defaults() Config {
	return Config{
		ServiceName:        "storefront",
		HTTPPort:           8080,
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
		LogLevel:           "info",
		LogFormat:          "json",
		StorageBackend:     "file",
		DataDir:            "./data",
		RedisPrefix:        "storefront:",
		MongoDatabase:      "storefront",
		BreakerFailures:    5,
		BreakerOpenAfter:   30 * time.Second,
		TaxRate:            decimal.RequireFromString(checkout.DefaultTaxRate),
		KafkaTopic:         "orders.placed",
		OTLPInsecure:       true,
	}
}

// Load reads path when it exists; a missing file leaves the defaults in
// place. Environment variables win over the file.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config file: %w", err)
		default:
			var f configFile
			if err := yaml.Unmarshal(raw, &f); err != nil {
				return Config{}, fmt.Errorf("parse config file: %w", err)
			}
			if err := cfg.applyFile(f); err != nil {
				return Config{}, err
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(f configFile) error {
	c.ServiceName = orString(f.Service.Name, c.ServiceName)
	if f.Service.HTTPPort > 0 {
		c.HTTPPort = f.Service.HTTPPort
	}
	if f.Service.MaxRequestBodySize > 0 {
		c.MaxRequestBodySize = f.Service.MaxRequestBodySize
	}
	c.LogLevel = orString(f.Log.Level, c.LogLevel)
	c.LogFormat = orString(f.Log.Format, c.LogFormat)
	c.CatalogPath = orString(f.Catalog.Path, c.CatalogPath)
	c.StorageBackend = orString(f.Storage.Backend, c.StorageBackend)
	c.DataDir = orString(f.Storage.DataDir, c.DataDir)
	c.RedisURL = orString(f.Storage.RedisURL, c.RedisURL)
	c.RedisPrefix = orString(f.Storage.RedisPrefix, c.RedisPrefix)
	c.MongoURI = orString(f.Storage.MongoURI, c.MongoURI)
	c.MongoDatabase = orString(f.Storage.MongoDatabase, c.MongoDatabase)
	c.SQLDSN = orString(f.Storage.SQLDSN, c.SQLDSN)
	if f.Storage.BreakerFailures > 0 {
		c.BreakerFailures = f.Storage.BreakerFailures
	}
	if len(f.Events.KafkaBrokers) > 0 {
		c.KafkaBrokers = trimNonEmpty(f.Events.KafkaBrokers)
	}
	c.KafkaTopic = orString(f.Events.KafkaTopic, c.KafkaTopic)
	c.OTLPEndpoint = orString(f.Telemetry.OTLPEndpoint, c.OTLPEndpoint)
	if f.Telemetry.OTLPInsecure != nil {
		c.OTLPInsecure = *f.Telemetry.OTLPInsecure
	}

	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"service.request_timeout", f.Service.RequestTimeout, &c.RequestTimeout},
		{"service.shutdown_timeout", f.Service.ShutdownTimeout, &c.ShutdownTimeout},
		{"storage.snapshot_ttl", f.Storage.SnapshotTTL, &c.SnapshotTTL},
		{"storage.breaker_open_after", f.Storage.BreakerOpenAfter, &c.BreakerOpenAfter},
		{"checkout.processing_delay", f.Checkout.ProcessingDelay, &c.ProcessingDelay},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.name, d.raw, err)
		}
		*d.dst = v
	}

	amounts := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"checkout.tax_rate", f.Checkout.TaxRate, &c.TaxRate},
		{"checkout.free_shipping_threshold", f.Checkout.FreeShippingThreshold, &c.FreeShippingThreshold},
		{"checkout.flat_shipping_fee", f.Checkout.FlatShippingFee, &c.FlatShippingFee},
	}
	for _, a := range amounts {
		if a.raw == "" {
			continue
		}
		v, err := decimal.NewFromString(a.raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", a.name, a.raw, err)
		}
		*a.dst = v
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.ServiceName = envOrDefault("SERVICE_NAME", c.ServiceName)
	c.HTTPPort = envInt("HTTP_PORT", c.HTTPPort)
	c.LogLevel = envOrDefault("LOG_LEVEL", c.LogLevel)
	c.LogFormat = envOrDefault("LOG_FORMAT", c.LogFormat)
	c.CatalogPath = envOrDefault("CATALOG_PATH", c.CatalogPath)
	c.StorageBackend = envOrDefault("STORAGE_BACKEND", c.StorageBackend)
	c.DataDir = envOrDefault("DATA_DIR", c.DataDir)
	c.RedisURL = envOrDefault("REDIS_URL", c.RedisURL)
	c.RedisPrefix = envOrDefault("REDIS_PREFIX", c.RedisPrefix)
	c.MongoURI = envOrDefault("MONGO_URI", c.MongoURI)
	c.MongoDatabase = envOrDefault("MONGO_DATABASE", c.MongoDatabase)
	c.SQLDSN = envOrDefault("SQL_DSN", envOrDefault("DATABASE_URL", c.SQLDSN))
	c.BreakerFailures = envInt("BREAKER_FAILURES", c.BreakerFailures)
	c.KafkaBrokers = envCSV("KAFKA_BROKERS", c.KafkaBrokers)
	c.KafkaTopic = envOrDefault("KAFKA_TOPIC", c.KafkaTopic)
	c.OTLPEndpoint = envOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", c.OTLPEndpoint)
	c.OTLPInsecure = envBool("OTEL_EXPORTER_OTLP_INSECURE", c.OTLPInsecure)

	var err error
	if c.RequestTimeout, err = envDuration("REQUEST_TIMEOUT", c.RequestTimeout); err != nil {
		return err
	}
	if c.ShutdownTimeout, err = envDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout); err != nil {
		return err
	}
	if c.SnapshotTTL, err = envDuration("SNAPSHOT_TTL", c.SnapshotTTL); err != nil {
		return err
	}
	if c.BreakerOpenAfter, err = envDuration("BREAKER_OPEN_AFTER", c.BreakerOpenAfter); err != nil {
		return err
	}
	if c.ProcessingDelay, err = envDuration("CHECKOUT_PROCESSING_DELAY", c.ProcessingDelay); err != nil {
		return err
	}
	if c.TaxRate, err = envDecimal("TAX_RATE", c.TaxRate); err != nil {
		return err
	}
	if c.FreeShippingThreshold, err = envDecimal("FREE_SHIPPING_THRESHOLD", c.FreeShippingThreshold); err != nil {
		return err
	}
	if c.FlatShippingFee, err = envDecimal("FLAT_SHIPPING_FEE", c.FlatShippingFee); err != nil {
		return err
	}
	return nil
}

func (c Config) validate() error {
	var errs []error
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("http port %d out of range", c.HTTPPort))
	}
	switch c.StorageBackend {
	case "memory", "file":
	case "redis":
		if c.RedisURL == "" {
			errs = append(errs, errors.New("missing REDIS_URL for redis storage"))
		}
	case "mongo":
		if c.MongoURI == "" {
			errs = append(errs, errors.New("missing MONGO_URI for mongo storage"))
		}
	case "sqlite", "postgres":
		if c.SQLDSN == "" {
			errs = append(errs, fmt.Errorf("missing SQL_DSN for %s storage", c.StorageBackend))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.StorageBackend))
	}
	if c.BreakerFailures <= 0 {
		errs = append(errs, fmt.Errorf("breaker failures must be positive, got %d", c.BreakerFailures))
	}
	if c.ProcessingDelay < 0 {
		errs = append(errs, errors.New("processing delay cannot be negative"))
	}
	if err := c.Pricing().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.HTTPPort)
}

func (c Config) Pricing() checkout.Pricing {
	return checkout.Pricing{
		TaxRate:               c.TaxRate,
		FreeShippingThreshold: c.FreeShippingThreshold,
		FlatShippingFee:       c.FlatShippingFee,
	}
}

func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:       c.StorageBackend,
		FileDir:       c.DataDir,
		RedisURL:      c.RedisURL,
		RedisPrefix:   c.RedisPrefix,
		MongoURI:      c.MongoURI,
		MongoDatabase: c.MongoDatabase,
		SQLDSN:        c.SQLDSN,
		ExpireAfter:   c.SnapshotTTL,
		Breaker: storage.BreakerSettings{
			ConsecutiveFailures: uint32(c.BreakerFailures),
			OpenTimeout:         c.BreakerOpenAfter,
		},
	}
}

func orString(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}

func envDuration(name string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v, nil
}

func envDecimal(name string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v, nil
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
