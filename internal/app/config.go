package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"keyshare/internal/domain"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home         string        // state directory, e.g. $HOME/.keyshare
	DirectoryURL string        // key directory base URL, e.g. http://127.0.0.1:8008
	DatabaseURL  string        // optional; snapshots go to SQL instead of Home
	Strategy     string        // default share strategy
	LogLevel     string        // debug, info, warn, error
	Env          string        // reported on every log line
	CacheSize    int           // trust cache capacity; 0 disables
	Timeout      time.Duration // per directory request
	HTTP         *http.Client  // optional; defaults to a client with Timeout
}

// LoadConfig reads KEYSHARE_* environment variables, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := Config{
		Home:         getenv("KEYSHARE_HOME", ""),
		DirectoryURL: getenv("KEYSHARE_DIRECTORY_URL", ""),
		DatabaseURL:  getenv("KEYSHARE_DATABASE_URL", ""),
		Strategy:     getenv("KEYSHARE_STRATEGY", domain.OnlyTrustedDevices.String()),
		LogLevel:     getenv("KEYSHARE_LOG_LEVEL", "warn"),
		Env:          getenv("KEYSHARE_ENV", "dev"),
		CacheSize:    256,
		Timeout:      10 * time.Second,
	}
	if v := getenv("KEYSHARE_CACHE_SIZE", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("KEYSHARE_CACHE_SIZE: %w", err)
		}
		cfg.CacheSize = n
	}
	if v := getenv("KEYSHARE_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("KEYSHARE_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// DefaultStrategy parses cfg.Strategy.
func (cfg Config) DefaultStrategy() (domain.ShareStrategy, error) {
	return domain.ParseShareStrategy(cfg.Strategy)
}

// HomeDir returns cfg.Home, or ~/.keyshare when unset.
func (cfg Config) HomeDir() (string, error) {
	if cfg.Home != "" {
		return cfg.Home, nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".keyshare"), nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
