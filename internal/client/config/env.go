package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "EXAMADMIN_"

// parseEnv overlays cfg with EXAMADMIN_* variables. Values from the dotenv
// file at path are used only where the process environment has none; a
// missing file is not an error.
func parseEnv(cfg *Config, path string) error {
	fileEnv, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", path, err)
		}
		fileEnv = map[string]string{}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			return v, true
		}
		v, ok := fileEnv[envPrefix+key]
		return v, ok
	}

	if v, ok := lookup("SERVER_URL"); ok {
		cfg.ServerURL = v
	}
	if v, ok := lookup("DB_PATH"); ok {
		cfg.DatabasePath = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup("LOG_BACKEND"); ok {
		cfg.LogBackend = v
	}
	if v, ok := lookup("REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sREQUEST_TIMEOUT: %w", envPrefix, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup("CACHE_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sCACHE_TTL: %w", envPrefix, err)
		}
		cfg.CacheTTL = d
	}
	if v, ok := lookup("PAGE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPAGE_SIZE: %w", envPrefix, err)
		}
		cfg.PageSize = n
	}
	return nil
}
