package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageRedis = "redis"
	StorageMySQL = "mysql"
)

type Config struct {
	ServiceName string
	LogLevel    string
	LogFormat   string

	CartHTTPAddr string
	CartGRPCAddr string
	CartStorage  string
	CartSlotKey  string

	RedisAddr string
	MySQLDSN  string

	StockAPIURL     string
	StockAPITimeout time.Duration

	StockHTTPAddr   string
	CatalogSource   string
	CatalogSeedFile string

	OTLPEndpoint string
}

func Load() (Config, error) {
	cfg := Config{
		ServiceName: getEnv("SERVICE_NAME", "cart-service"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),

		CartHTTPAddr: getEnv("CART_HTTP_ADDR", ":8080"),
		CartGRPCAddr: getEnv("CART_GRPC_ADDR", ":50051"),
		CartStorage:  strings.ToLower(getEnv("CART_STORAGE", StorageRedis)),
		CartSlotKey:  getEnv("CART_SLOT_KEY", "@RocketShoes:cart"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		MySQLDSN:  getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/rocketshoes?parseTime=true"),

		StockAPIURL:     getEnv("STOCK_API_URL", "http://localhost:3333"),
		StockAPITimeout: getEnvDuration("STOCK_API_TIMEOUT", 5*time.Second),

		StockHTTPAddr:   getEnv("STOCK_HTTP_ADDR", ":3333"),
		CatalogSource:   strings.ToLower(getEnv("CATALOG_SOURCE", StorageRedis)),
		CatalogSeedFile: getEnv("CATALOG_SEED_FILE", ""),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if !validBackend(c.CartStorage) {
		return fmt.Errorf("CART_STORAGE must be %q or %q, got %q", StorageRedis, StorageMySQL, c.CartStorage)
	}
	if !validBackend(c.CatalogSource) {
		return fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", StorageRedis, StorageMySQL, c.CatalogSource)
	}
	if c.CartSlotKey == "" {
		return fmt.Errorf("CART_SLOT_KEY must not be empty")
	}
	if c.StockAPITimeout <= 0 {
		return fmt.Errorf("STOCK_API_TIMEOUT must be positive")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

func validBackend(name string) bool {
	return name == StorageRedis || name == StorageMySQL
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
