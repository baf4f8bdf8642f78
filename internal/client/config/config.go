package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/examprep-admin/internal/logging"
)

// Config holds runtime settings for the admin console.
//
// Fields:
//   - ServerURL: absolute base URL of the admin API, including /api/v1.
//   - RequestTimeout: upper bound for one HTTP call.
//   - DatabasePath: SQLite file holding the local session marker.
//   - LogLevel, LogBackend: see package logging.
//   - PageSize: rows per page in list views.
//   - CacheTTL: lifetime of cached list and detail reads; 0 disables caching.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	DatabasePath   string
	LogLevel       string
	LogBackend     string
	PageSize       int
	CacheTTL       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000/api/v1"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "examadmin.db"
	c.LogLevel = "info"
	c.LogBackend = logging.BackendSlog
	c.PageSize = 10
	c.CacheTTL = 30 * time.Second
}

// Validate reports settings the console cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server url %q must be absolute", c.ServerURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got %s", c.CacheTTL)
	}
	switch c.LogBackend {
	case logging.BackendSlog, logging.BackendZerolog:
	default:
		return fmt.Errorf("unknown log backend %q", c.LogBackend)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment (a .env file in the working directory first), an optional
// JSON or YAML file and command-line flags. Later sources take precedence
// over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
