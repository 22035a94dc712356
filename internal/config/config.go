package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	StorageDriver  string
	StorageDSN     string
	RedisURL       string
	RedisNamespace string

	CatalogURL     string
	CatalogTimeout time.Duration

	CatalogSeed        string
	CatalogDatabaseURL string

	KafkaBrokers []string
}

// Load reads the configuration from the environment, after loading envFile
// when it exists. An empty envFile skips the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Notice: %s file not found: %v. Using system environment variables", envFile, err)
		}
	}

	cfg := Config{
		ServiceName: EnvDefault("SERVICE_NAME", "shop"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		StorageDriver:  strings.ToLower(EnvDefault("STORAGE_DRIVER", DriverSQLite)),
		StorageDSN:     EnvDefault("STORAGE_DSN", "shoe_shop.db"),
		RedisURL:       EnvDefault("REDIS_URL", "redis://localhost:6379/0"),
		RedisNamespace: EnvDefault("REDIS_NAMESPACE", "shoe_shop"),

		CatalogURL:     EnvDefault("CATALOG_URL", "http://localhost:8081/"),
		CatalogTimeout: time.Duration(EnvIntDefault("CATALOG_TIMEOUT", 5)) * time.Second,

		CatalogSeed:        os.Getenv("CATALOG_SEED"),
		CatalogDatabaseURL: os.Getenv("CATALOG_DATABASE_URL"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverPostgres:
		if c.StorageDSN == "" {
			return fmt.Errorf("STORAGE_DSN is required for %s: %w", c.StorageDriver, ErrInvalidConfig)
		}
	case DriverRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required for redis: %w", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q: %w", c.StorageDriver, ErrInvalidConfig)
	}
	if c.ServerPort <= 0 {
		return fmt.Errorf("SERVER_PORT must be positive: %w", ErrInvalidConfig)
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive: %w", ErrInvalidConfig)
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
