package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:5000/api/v1", c.ServerURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "slog", c.LogBackend)
	assert.Equal(t, 10, c.PageSize)
	require.NoError(t, c.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"relative url", func(c *Config) { c.ServerURL = "/api/v1" }},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"zero page size", func(c *Config) { c.PageSize = 0 }},
		{"negative ttl", func(c *Config) { c.CacheTTL = -time.Second }},
		{"unknown backend", func(c *Config) { c.LogBackend = "logrus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mod(&c)
			require.Error(t, c.Validate())
		})
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected func(*Config)
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://api.example.com/api/v1", "-t", "5", "-d", "/tmp/x.db", "-l", "debug"},
			expected: func(c *Config) {
				c.ServerURL = "https://api.example.com/api/v1"
				c.RequestTimeout = 5 * time.Second
				c.DatabasePath = "/tmp/x.db"
				c.LogLevel = "debug"
			},
		},
		{
			name:     "unrelated flags ignored",
			args:     []string{"-c", "conf.yaml", "-l", "warn"},
			expected: func(c *Config) { c.LogLevel = "warn" },
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)

			got := defaults()
			got.RequestTimeout = 1500 * time.Millisecond
			err := parseFlags(&got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := defaults()
			want.RequestTimeout = 1500 * time.Millisecond
			tt.expected(&want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "admin.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("server_url: https://yaml.example/api/v1\ncache_ttl: 1m\npage_size: 25\n"), 0o600))

	jsonPath := filepath.Join(dir, "admin.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"request_timeout":"3s","log_backend":"zerolog"}`), 0o600))

	t.Run("yaml", func(t *testing.T) {
		withArgs(t, "-c", yamlPath)
		c := defaults()
		require.NoError(t, parseFile(&c))
		assert.Equal(t, "https://yaml.example/api/v1", c.ServerURL)
		assert.Equal(t, time.Minute, c.CacheTTL)
		assert.Equal(t, 25, c.PageSize)
		assert.Equal(t, 15*time.Second, c.RequestTimeout, "absent keys keep earlier values")
	})

	t.Run("json", func(t *testing.T) {
		withArgs(t, "--config="+jsonPath)
		c := defaults()
		require.NoError(t, parseFile(&c))
		assert.Equal(t, 3*time.Second, c.RequestTimeout)
		assert.Equal(t, "zerolog", c.LogBackend)
		assert.Equal(t, "http://localhost:5000/api/v1", c.ServerURL)
	})

	t.Run("no flag, no change", func(t *testing.T) {
		withArgs(t)
		c := defaults()
		require.NoError(t, parseFile(&c))
		assert.Equal(t, defaults(), c)
	})

	t.Run("invalid content", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))
		withArgs(t, "-config", bad)
		c := defaults()
		require.Error(t, parseFile(&c))
	})

	t.Run("missing file", func(t *testing.T) {
		withArgs(t, "-c", filepath.Join(dir, "nope.yaml"))
		c := defaults()
		require.Error(t, parseFile(&c))
	})
}

func TestParseEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("EXAMADMIN_SERVER_URL=https://dotenv.example/api/v1\nEXAMADMIN_PAGE_SIZE=50\nEXAMADMIN_LOG_LEVEL=debug\n"), 0o600))

	t.Setenv("EXAMADMIN_LOG_LEVEL", "error")
	t.Setenv("EXAMADMIN_CACHE_TTL", "0s")

	c := defaults()
	require.NoError(t, parseEnv(&c, dotenv))

	assert.Equal(t, "https://dotenv.example/api/v1", c.ServerURL)
	assert.Equal(t, 50, c.PageSize)
	assert.Equal(t, "error", c.LogLevel, "process environment wins over .env")
	assert.Zero(t, c.CacheTTL)
}

func TestParseEnv_MissingDotenvAndBadValue(t *testing.T) {
	c := defaults()
	require.NoError(t, parseEnv(&c, filepath.Join(t.TempDir(), ".env")))
	assert.Equal(t, defaults(), c)

	t.Setenv("EXAMADMIN_REQUEST_TIMEOUT", "soon")
	require.Error(t, parseEnv(&c, filepath.Join(t.TempDir(), ".env")))
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "admin.yml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: https://file.example/api/v1\nlog_level: warn\n"), 0o600))

	t.Setenv("EXAMADMIN_SERVER_URL", "https://env.example/api/v1")
	t.Setenv("EXAMADMIN_DB_PATH", "env.db")
	withArgs(t, "-c", path, "-l", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://file.example/api/v1", cfg.ServerURL)
	assert.Equal(t, "env.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
}
