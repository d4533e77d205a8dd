package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"delivery-routing/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	old := pflag.CommandLine
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	t.Cleanup(func() {
		pflag.CommandLine = old
	})
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"GEO_BASE_URL", "GEO_API_KEY", "GEO_PROFILE", "GEO_TIMEOUT",
		"GEO_MAX_ATTEMPTS", "GEO_RETRY_BASE_DELAY", "GEO_RETRY_MAX_DELAY",
		"REDIS_ADDR", "REDIS_GEOCODE_TTL",
		"KAFKA_BROKERS", "KAFKA_GROUP_ID", "KAFKA_ORDERS_TOPIC",
		"DELIVERY_OPERATION_TIMEOUT",
		"PPROF_ADDR", "PPROF_USER", "PPROF_PASS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, 8080, cfg.Port)

	require.Equal(t, "127.0.0.1", cfg.DB.Host)
	require.Equal(t, "5432", cfg.DB.Port)
	require.Equal(t, "routing_db", cfg.DB.Name)

	require.Equal(t, "https://api.openrouteservice.org", cfg.Geo.BaseURL)
	require.Equal(t, "driving-car", cfg.Geo.Profile)
	require.Equal(t, 4, cfg.Geo.MaxAttempts)
	require.Equal(t, 150*time.Millisecond, cfg.Geo.BaseDelay)
	require.Equal(t, 2*time.Second, cfg.Geo.MaxDelay)

	require.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	require.Equal(t, 24*time.Hour, cfg.Redis.GeocodeTTL)

	require.Empty(t, cfg.Kafka.Brokers)
	require.Equal(t, "routing-order-events", cfg.Kafka.GroupID)
	require.Equal(t, "order-status-events", cfg.Kafka.Topic)

	require.Equal(t, 3*time.Second, cfg.Delivery.OperationTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "15432")
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_DB", "routing")
	t.Setenv("GEO_API_KEY", "key-123")
	t.Setenv("GEO_PROFILE", "driving-hgv")
	t.Setenv("GEO_MAX_ATTEMPTS", "2")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("DELIVERY_OPERATION_TIMEOUT", "7s")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "db", cfg.DB.Host)
	require.Equal(t, "postgres://u:p@db:15432/routing?sslmode=disable", cfg.DB.DSN())
	require.Equal(t, "key-123", cfg.Geo.APIKey)
	require.Equal(t, "driving-hgv", cfg.Geo.Profile)
	require.Equal(t, 2, cfg.Geo.MaxAttempts)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, 7*time.Second, cfg.Delivery.OperationTimeout)
}

func TestLoad_InvalidPort(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "70000")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_InvalidMaxAttempts(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("GEO_MAX_ATTEMPTS", "0")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "not-a-number")
	t.Setenv("DELIVERY_OPERATION_TIMEOUT", "soon")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 3*time.Second, cfg.Delivery.OperationTimeout)
}
