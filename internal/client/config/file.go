package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/examprep-admin/internal/flagx"
	"github.com/dmitrijs2005/examprep-admin/internal/timex"
)

// FileConfig is a DTO used exclusively for file unmarshalling. It relies on
// timex.Duration so durations can be strings like "15s" or integer
// nanoseconds. Only fields present in the file override the Config.
type FileConfig struct {
	ServerURL      *string         `json:"server_url" yaml:"server_url"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DatabasePath   *string         `json:"database_path" yaml:"database_path"`
	LogLevel       *string         `json:"log_level" yaml:"log_level"`
	LogBackend     *string         `json:"log_backend" yaml:"log_backend"`
	PageSize       *int            `json:"page_size" yaml:"page_size"`
	CacheTTL       *timex.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// parseFile overlays cfg with the file named by -c or -config. The format
// follows the extension: .yaml and .yml are YAML, anything else is JSON.
func parseFile(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.ServerURL != nil {
		cfg.ServerURL = *fc.ServerURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogBackend != nil {
		cfg.LogBackend = *fc.LogBackend
	}
	if fc.PageSize != nil {
		cfg.PageSize = *fc.PageSize
	}
	if fc.CacheTTL != nil {
		cfg.CacheTTL = fc.CacheTTL.Duration
	}
}
