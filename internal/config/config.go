// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/j-veylop/govnews-dashboard-tui/internal/models"
)

// AppName is used for the XDG config and cache directories.
const AppName = "govnews-dashboard"

// Config holds the application configuration.
type Config struct {
	DefaultRangeStart  time.Time
	DatasetName        string
	DatasetConfig      string
	DatasetSplit       string
	DatasetFile        string
	HFToken            string
	HFEndpoint         string
	DatabasePath       string
	LogFile            string
	LogLevel           string
	CacheTTL           time.Duration
	FetchTimeout       time.Duration // per page request
	FetchPageSize      int
	FetchConcurrency   int
	DefaultTopN        int
	DefaultGranularity models.Granularity
	Notifications      bool
}

// Default values
const (
	defaultCacheTTL         = 6 * time.Hour
	defaultFetchTimeout     = 30 * time.Second
	defaultFetchPageSize    = 100
	defaultFetchConcurrency = 8
	defaultTopN             = 10
	defaultGranularity      = "year"
	defaultRangeStart       = "2010-01-01"
	defaultDatasetName      = "nitaibezerra/govbrnews-reduced"
	defaultDatasetConfig    = "default"
	defaultDatasetSplit     = "train"
	defaultHFEndpoint       = "https://datasets-server.huggingface.co"
	defaultLogLevel         = "info"

	// maxFetchPageSize is the largest page the datasets-server rows API serves.
	maxFetchPageSize = 100
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	granularity, err := models.ParseGranularity(getEnvString("DEFAULT_GRANULARITY", defaultGranularity))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_GRANULARITY: %w", err)
	}

	rangeStart, err := time.Parse(time.DateOnly, getEnvString("DEFAULT_RANGE_START", defaultRangeStart))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRangeStart, err)
	}

	cfg := &Config{
		DatasetName:        getEnvString("DATASET_NAME", defaultDatasetName),
		DatasetConfig:      getEnvString("DATASET_CONFIG", defaultDatasetConfig),
		DatasetSplit:       getEnvString("DATASET_SPLIT", defaultDatasetSplit),
		DatasetFile:        getEnvString("DATASET_FILE", ""),
		HFToken:            getEnvString("HF_TOKEN", ""),
		HFEndpoint:         strings.TrimRight(getEnvString("HF_ENDPOINT", defaultHFEndpoint), "/"),
		DatabasePath:       getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		LogFile:            getEnvString("LOG_FILE", ""),
		LogLevel:           getEnvString("LOG_LEVEL", defaultLogLevel),
		CacheTTL:           getEnvDuration("CACHE_TTL", defaultCacheTTL),
		FetchTimeout:       getEnvDuration("FETCH_TIMEOUT", defaultFetchTimeout),
		FetchPageSize:      getEnvInt("FETCH_PAGE_SIZE", defaultFetchPageSize),
		FetchConcurrency:   getEnvInt("FETCH_CONCURRENCY", defaultFetchConcurrency),
		DefaultTopN:        getEnvInt("DEFAULT_TOP_N", defaultTopN),
		DefaultGranularity: granularity,
		DefaultRangeStart:  rangeStart,
		Notifications:      getEnvBool("NOTIFICATIONS", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure database directory exists
	if cfg.DatabasePath != "" {
		if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the configuration for values the application cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.CacheTTL <= 0:
		return ErrInvalidCacheTTL
	case c.DefaultTopN <= 0:
		return ErrInvalidTopN
	case c.FetchPageSize <= 0 || c.FetchPageSize > maxFetchPageSize:
		return ErrInvalidPageSize
	case c.FetchConcurrency <= 0:
		return ErrInvalidConcurrency
	case c.FetchTimeout <= 0:
		return ErrInvalidTimeout
	case c.DatasetFile == "" && c.DatasetName == "":
		return ErrNoDataset
	case !c.DefaultGranularity.Valid():
		return fmt.Errorf("DEFAULT_GRANULARITY: %w", models.ErrInvalidGranularity)
	}
	return nil
}

// SourceName describes where the dataset is loaded from.
func (c *Config) SourceName() string {
	if c.DatasetFile != "" {
		return c.DatasetFile
	}
	return fmt.Sprintf("hf://%s/%s/%s", c.DatasetName, c.DatasetConfig, c.DatasetSplit)
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	paths = append(paths, filepath.Join(xdg.ConfigHome, AppName, ".env"))

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".govnews", ".env"))
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the snapshot database.
func getDefaultDatabasePath() string {
	return filepath.Join(xdg.CacheHome, AppName, "snapshots.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "6h", "90m".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
