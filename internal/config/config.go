package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// DefaultRegistryURL is the public Geonorge kommuneinfo endpoint.
const DefaultRegistryURL = "https://ws.geonorge.no/kommuneinfo/v1/kommuner"

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataDir      string
	SupportFile  string
	ContactsFile string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// DatasetCacheTTL bounds how long a built dataset is reused before the
	// source files are re-read (mtime changes invalidate earlier).
	DatasetCacheTTL time.Duration

	// Municipality registry configuration.
	RegistryURL      string
	RegistryEnabled  bool
	RegistryTimeout  time.Duration
	RegistryCacheTTL time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("DATASET_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}
	registryTimeout, err := parseDuration("REGISTRY_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	registryCacheTTL, err := parseDuration("REGISTRY_CACHE_TTL", "1h")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:      envOrDefault("DATA_DIR", "data"),
		SupportFile:  envOrDefault("SUPPORT_FILE", "piggdekk_support.csv"),
		ContactsFile: envOrDefault("CONTACTS_FILE", "municipality_contacts.csv"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		DatasetCacheTTL: cacheTTL,

		RegistryURL:      envOrDefault("REGISTRY_URL", DefaultRegistryURL),
		RegistryEnabled:  os.Getenv("REGISTRY_ENABLED") == "true",
		RegistryTimeout:  registryTimeout,
		RegistryCacheTTL: registryCacheTTL,
	}

	if cfg.DataDir == "" {
		return nil, errors.New("DATA_DIR is required")
	}
	if cfg.SupportFile == "" {
		return nil, errors.New("SUPPORT_FILE is required")
	}
	if cfg.RegistryEnabled && cfg.RegistryURL == "" {
		return nil, errors.New("REGISTRY_ENABLED is true but REGISTRY_URL is not set")
	}

	return cfg, nil
}

// SupportPath is the full path of the support dataset file.
func (c *Config) SupportPath() string {
	return filepath.Join(c.DataDir, c.SupportFile)
}

// ContactsPath is the full path of the contacts dataset file.
func (c *Config) ContactsPath() string {
	return filepath.Join(c.DataDir, c.ContactsFile)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}
