package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"CART_STORAGE", "CATALOG_SOURCE", "CART_SLOT_KEY", "STOCK_API_TIMEOUT", "LOG_FORMAT", "STOCK_API_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageRedis, cfg.CartStorage)
	assert.Equal(t, "@RocketShoes:cart", cfg.CartSlotKey)
	assert.Equal(t, "http://localhost:3333", cfg.StockAPIURL)
	assert.Equal(t, 5*time.Second, cfg.StockAPITimeout)
	assert.Equal(t, ":8080", cfg.CartHTTPAddr)
	assert.Equal(t, ":50051", cfg.CartGRPCAddr)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CART_STORAGE", "MySQL")
	t.Setenv("CART_SLOT_KEY", "shop:cart")
	t.Setenv("STOCK_API_TIMEOUT", "250ms")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMySQL, cfg.CartStorage)
	assert.Equal(t, "shop:cart", cfg.CartSlotKey)
	assert.Equal(t, 250*time.Millisecond, cfg.StockAPITimeout)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "3")
	assert.Equal(t, 3*time.Second, getEnvDuration("TEST_TIMEOUT", time.Second))

	t.Setenv("TEST_TIMEOUT", "soon")
	assert.Equal(t, time.Second, getEnvDuration("TEST_TIMEOUT", time.Second))
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	bad := cfg
	bad.CartStorage = "sqlite"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.CatalogSource = "file"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.StockAPITimeout = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.LogFormat = "xml"
	assert.Error(t, bad.Validate())
}
