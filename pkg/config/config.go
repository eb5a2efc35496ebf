// Package config handles loading and managing Carscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for Carscope.
type Config struct {
	Scoring  ScoringConfig  `yaml:"scoring"`
	Template TemplateConfig `yaml:"template"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
}

// ScoringConfig controls valuation defaults.
type ScoringConfig struct {
	Currency           string  `yaml:"currency"`
	DefaultMarketValue float64 `yaml:"default_market_value"` // used when an input omits one
}

// TemplateConfig points at a custom checklist template.
type TemplateConfig struct {
	Path string `yaml:"path"` // empty means the built-in template
}

// StorageConfig selects where revision and report blobs are kept.
type StorageConfig struct {
	Backend   string `yaml:"backend"` // local, s3 or gcs
	LocalPath string `yaml:"local_path"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"` // S3-compatible endpoint, e.g. MinIO
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// ServerConfig controls the HTTP service.
type ServerConfig struct {
	Port           string  `yaml:"port"`
	DatabaseURL    string  `yaml:"database_url"`
	APIKey         string  `yaml:"api_key"`
	CacheSize      int     `yaml:"cache_size"`
	ShareRateLimit float64 `yaml:"share_rate_limit"` // requests per second per client
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Currency: "INR",
		},
		Storage: StorageConfig{
			Backend:   "local",
			LocalPath: filepath.Join(CacheDir(), "blobs"),
		},
		Server: ServerConfig{
			Port:           "8080",
			DatabaseURL:    "postgres://localhost:5432/carscope?sslmode=disable",
			CacheSize:      256,
			ShareRateLimit: 5,
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables looked up with getenv.
// Unset or empty variables leave the current value in place.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Server.Port)
	str("DATABASE_URL", &c.Server.DatabaseURL)
	str("API_KEY", &c.Server.APIKey)
	str("STORAGE_BACKEND", &c.Storage.Backend)
	str("LOCAL_STORAGE_PATH", &c.Storage.LocalPath)
	str("S3_REGION", &c.Storage.Region)
	str("S3_ENDPOINT", &c.Storage.Endpoint)
	str("S3_ACCESS_KEY", &c.Storage.AccessKey)
	str("S3_SECRET_KEY", &c.Storage.SecretKey)
	str("S3_BUCKET", &c.Storage.Bucket)
	str("GCS_BUCKET", &c.Storage.Bucket)

	if v := getenv("SCORE_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("SCORE_CACHE_SIZE: want a positive integer, got %q", v)
		}
		c.Server.CacheSize = n
	}
	if v := getenv("SHARE_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("SHARE_RATE_LIMIT: want a positive number, got %q", v)
		}
		c.Server.ShareRateLimit = f
	}
	return nil
}

// FindConfigFile looks for .carscope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".carscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the per-user data directory, ~/.cache/carscope.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "carscope")
}
