package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port     int
	DB       DB
	Geo      Geo
	Redis    Redis
	Kafka    Kafka
	Delivery Delivery
	Pprof    Pprof
}

// Pprof stores the debug profiling endpoint settings.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns the PostgreSQL connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Geo stores geo provider settings (geocoding and directions).
type Geo struct {
	BaseURL     string
	APIKey      string
	Profile     string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Redis stores redis cache settings.
type Redis struct {
	Addr       string
	GeocodeTTL time.Duration
}

// Kafka stores order event consumer settings.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Delivery stores delivery service settings.
type Delivery struct {
	OperationTimeout time.Duration
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:     defaultPort,
		DB:       DefaultDB(),
		Geo:      DefaultGeo(),
		Redis:    DefaultRedis(),
		Kafka:    DefaultKafka(),
		Delivery: DefaultDelivery(),
		Pprof:    DefaultPprof(),
	}

	cfg.Port = envInt("PORT", cfg.Port)

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envString("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)

	cfg.Geo.BaseURL = envString("GEO_BASE_URL", cfg.Geo.BaseURL)
	cfg.Geo.APIKey = envString("GEO_API_KEY", cfg.Geo.APIKey)
	cfg.Geo.Profile = envString("GEO_PROFILE", cfg.Geo.Profile)
	cfg.Geo.Timeout = envDuration("GEO_TIMEOUT", cfg.Geo.Timeout)
	cfg.Geo.MaxAttempts = envInt("GEO_MAX_ATTEMPTS", cfg.Geo.MaxAttempts)
	cfg.Geo.BaseDelay = envDuration("GEO_RETRY_BASE_DELAY", cfg.Geo.BaseDelay)
	cfg.Geo.MaxDelay = envDuration("GEO_RETRY_MAX_DELAY", cfg.Geo.MaxDelay)

	cfg.Redis.Addr = envString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.GeocodeTTL = envDuration("REDIS_GEOCODE_TTL", cfg.Redis.GeocodeTTL)

	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		cfg.Kafka.Brokers = splitBrokers(v)
	}
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.Topic = envString("KAFKA_ORDERS_TOPIC", cfg.Kafka.Topic)

	cfg.Delivery.OperationTimeout = envDuration("DELIVERY_OPERATION_TIMEOUT", cfg.Delivery.OperationTimeout)

	cfg.Pprof.Addr = envString("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = envString("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = envString("PPROF_PASS", cfg.Pprof.Pass)

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Parse()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Geo.MaxAttempts <= 0 {
		return nil, fmt.Errorf("invalid geo max attempts: %d", cfg.Geo.MaxAttempts)
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
