package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "piggdekk_support.csv", cfg.SupportFile)
	assert.Equal(t, "municipality_contacts.csv", cfg.ContactsFile)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.DatasetCacheTTL)
	assert.False(t, cfg.RegistryEnabled)
	assert.Equal(t, DefaultRegistryURL, cfg.RegistryURL)
	assert.Equal(t, 10*time.Second, cfg.RegistryTimeout)
	assert.Equal(t, time.Hour, cfg.RegistryCacheTTL)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/piggdekk")
	t.Setenv("SUPPORT_FILE", "support.csv")
	t.Setenv("CONTACTS_FILE", "contacts.csv")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DATASET_CACHE_TTL", "1m")
	t.Setenv("REGISTRY_ENABLED", "true")
	t.Setenv("REGISTRY_URL", "http://localhost:8081/kommuner")
	t.Setenv("REGISTRY_TIMEOUT", "2s")
	t.Setenv("REGISTRY_CACHE_TTL", "10m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/piggdekk", cfg.DataDir)
	assert.Equal(t, "support.csv", cfg.SupportFile)
	assert.Equal(t, "contacts.csv", cfg.ContactsFile)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Minute, cfg.DatasetCacheTTL)
	assert.True(t, cfg.RegistryEnabled)
	assert.Equal(t, "http://localhost:8081/kommuner", cfg.RegistryURL)
	assert.Equal(t, 2*time.Second, cfg.RegistryTimeout)
	assert.Equal(t, 10*time.Minute, cfg.RegistryCacheTTL)
}

func TestLoad_Paths(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/piggdekk")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/srv/piggdekk", "piggdekk_support.csv"), cfg.SupportPath())
	assert.Equal(t, filepath.Join("/srv/piggdekk", "municipality_contacts.csv"), cfg.ContactsPath())
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeCacheTTL(t *testing.T) {
	t.Setenv("DATASET_CACHE_TTL", "-5m")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASET_CACHE_TTL")
}

func TestLoad_InvalidRegistryTimeout(t *testing.T) {
	t.Setenv("REGISTRY_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REGISTRY_TIMEOUT")
}
