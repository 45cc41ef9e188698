package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.APIBaseURL)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, 10, cfg.StockPageSize)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Empty(t, cfg.CSRFTrustedOrigins)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("API_BASE_URL", "https://stock.example.com/api/v1")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("DB_PATH", "/custom/db.sqlite")
	t.Setenv("APP_ENV", "production")
	t.Setenv("STOCK_PAGE_SIZE", "25")
	t.Setenv("CSRF_TRUSTED_ORIGINS", "admin.example.com,localhost:3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "https://stock.example.com/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, "/custom/db.sqlite", cfg.DBPath)
	assert.Equal(t, 25, cfg.StockPageSize)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"admin.example.com", "localhost:3000"}, cfg.CSRFTrustedOrigins)
}

func TestLoadRejectsInvalidPageSize(t *testing.T) {
	t.Setenv("STOCK_PAGE_SIZE", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
