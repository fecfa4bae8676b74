package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string
	RedisAddr   string

	// JWTSecret verifies caller bearer tokens. When empty no presented token
	// can verify, so only anonymous (guest) requests succeed.
	JWTSecret string
	// BootstrapToken is the out-of-band secret for the one-time initial-admin
	// grant. It is never stored alongside the bootstrap flag.
	BootstrapToken string

	RoleCacheTTL       time.Duration
	OutboxPollInterval time.Duration
}

func Load() (Config, error) {
	// Local runs keep secrets in .env; absence is fine in real environments.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "parceltrack"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName:        service,
		HTTPPort:           port,
		PostgresDSN:        os.Getenv("POSTGRES_DSN"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		BootstrapToken:     os.Getenv("ADMIN_BOOTSTRAP_TOKEN"),
		RoleCacheTTL:       envSeconds("ROLE_CACHE_TTL_SECONDS", 5*time.Minute),
		OutboxPollInterval: envSeconds("OUTBOX_POLL_INTERVAL_SECONDS", 2*time.Second),
	}, nil
}

func envSeconds(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
