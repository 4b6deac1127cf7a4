// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Storage     string
	DatabaseURL string
	AppPort     string
	JWTSecret   string
	JWTTTL      time.Duration
	RedisAddr   string
	KafkaBroker []string
	KafkaTopic  string
	OtelURL     string
	LogLevel    string
	Development bool
}

// Load reads envFile (when it exists) into the process environment and then
// builds a Config. A missing env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Storage:     getenv("STORAGE", StoragePostgres),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		AppPort:     getenv("APP_PORT", "8080"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaTopic:  getenv("KAFKA_TOPIC", "retail.events"),
		OtelURL:     os.Getenv("OTEL_ENDPOINT"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Development: os.Getenv("APP_ENV") == "development",
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBroker = append(cfg.KafkaBroker, b)
			}
		}
	}

	ttl, err := time.ParseDuration(getenv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
