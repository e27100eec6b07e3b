package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "0.08", cfg.TaxRate.String())
	assert.True(t, cfg.FlatShippingFee.IsZero())
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "orders.placed", cfg.KafkaTopic)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
service:
  http_port: 9000
  request_timeout: 5s
log:
  level: debug
  format: text
storage:
  backend: redis
  redis_url: redis://localhost:6379/0
  snapshot_ttl: 24h
  breaker_failures: 3
checkout:
  tax_rate: "0.2"
  free_shipping_threshold: "50"
  flat_shipping_fee: "4.99"
  processing_delay: 1500ms
events:
  kafka_brokers: [" kafka:9092 ", ""]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "redis", cfg.StorageBackend)
	assert.Equal(t, 24*time.Hour, cfg.SnapshotTTL)
	assert.Equal(t, "0.2", cfg.TaxRate.String())
	assert.Equal(t, 1500*time.Millisecond, cfg.ProcessingDelay)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)

	opts := cfg.StorageOptions()
	assert.Equal(t, "redis://localhost:6379/0", opts.RedisURL)
	assert.Equal(t, uint32(3), opts.Breaker.ConsecutiveFailures)
	assert.Equal(t, 24*time.Hour, opts.ExpireAfter)

	p := cfg.Pricing()
	assert.Equal(t, "4.99", p.FlatShippingFee.String())
	assert.Equal(t, "50", p.FreeShippingThreshold.String())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "service:\n  http_port: 9000\nstorage:\n  backend: memory\n")
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SQL_DSN", "file:test.db")
	t.Setenv("TAX_RATE", "0.1")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.StorageBackend)
	assert.Equal(t, "file:test.db", cfg.SQLDSN)
	assert.Equal(t, "0.1", cfg.TaxRate.String())
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{name: "bad yaml", body: "service: [", want: "parse config file"},
		{name: "bad duration", body: "service:\n  request_timeout: soon\n", want: "service.request_timeout"},
		{name: "bad tax", body: "checkout:\n  tax_rate: lots\n", want: "checkout.tax_rate"},
		{name: "tax out of range", body: "checkout:\n  tax_rate: \"2\"\n", want: "tax rate"},
		{name: "unknown backend", body: "storage:\n  backend: s3\n", want: `unknown storage backend "s3"`},
		{name: "redis without url", body: "storage:\n  backend: redis\n", want: "REDIS_URL"},
		{name: "bad env duration", env: map[string]string{"SHUTDOWN_TIMEOUT": "x"}, want: "SHUTDOWN_TIMEOUT"},
		{name: "bad env decimal", env: map[string]string{"FLAT_SHIPPING_FEE": "free"}, want: "FLAT_SHIPPING_FEE"},
		{name: "negative breaker failures", env: map[string]string{"BREAKER_FAILURES": "-1"}, want: "breaker failures must be positive"},
		{name: "zero breaker failures", env: map[string]string{"BREAKER_FAILURES": "0"}, want: "breaker failures must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.body)

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("CFG_INT", "notanint")
	assert.Equal(t, 3, envInt("CFG_INT", 3))

	t.Setenv("CFG_CSV", " x , ,y")
	assert.Equal(t, []string{"x", "y"}, envCSV("CFG_CSV", nil))
	assert.Equal(t, []string{"z"}, envCSV("CFG_UNSET_CSV", []string{"z"}))

	t.Setenv("CFG_BOOL", "no")
	assert.False(t, envBool("CFG_BOOL", true))
	t.Setenv("CFG_BOOL", "maybe")
	assert.True(t, envBool("CFG_BOOL", true))
}

func TestLoad_Telemetry(t *testing.T) {
	path := writeConfig(t, "telemetry:\n  otlp_endpoint: collector:4318\n  otlp_insecure: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "collector:4318", cfg.OTLPEndpoint)
	assert.False(t, cfg.OTLPInsecure)
}
