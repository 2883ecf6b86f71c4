package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.APIBaseURL)
	assert.Equal(t, 0.08, cfg.TaxRate)
	assert.Equal(t, 3, cfg.AddressLimit)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "default", cfg.SessionID)
}

func TestLoad_SessionIDFromEnv(t *testing.T) {
	t.Setenv("GO_SHOP_SESSION_ID", "operator-7")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "operator-7", cfg.SessionID)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: https://shop.example.com\ntax_rate: 0.13\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", cfg.APIBaseURL)
	assert.Equal(t, 0.13, cfg.TaxRate)
	assert.Equal(t, 3, cfg.AddressLimit)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: https://file.example.com\n"), 0o600))
	t.Setenv("GO_SHOP_API_URL", "https://env.example.com")
	t.Setenv("GO_SHOP_TAX_RATE", "0.13")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIBaseURL)
	assert.Equal(t, 0.13, cfg.TaxRate)
}

func TestLoad_BadTaxRate(t *testing.T) {
	t.Setenv("GO_SHOP_TAX_RATE", "1.5")
	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}
