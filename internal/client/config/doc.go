// Package config loads runtime configuration for the admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: EXAMADMIN_* variables, with a .env file in the working
//     directory filling in whatever the process environment leaves unset.
//  3. Optional JSON or YAML file selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the admin API
//	-t int      request timeout (seconds)
//	-d string   SQLite database path
//	-l string   log level
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "15s"
// or integer nanoseconds:
//
//	server_url: https://api.example.com/api/v1
//	request_timeout: 15s
//	database_path: examadmin.db
//	log_level: debug
//	log_backend: zerolog
//	page_size: 20
//	cache_ttl: 30s
//
// # Environment
//
//	EXAMADMIN_SERVER_URL, EXAMADMIN_REQUEST_TIMEOUT, EXAMADMIN_DB_PATH,
//	EXAMADMIN_LOG_LEVEL, EXAMADMIN_LOG_BACKEND, EXAMADMIN_PAGE_SIZE,
//	EXAMADMIN_CACHE_TTL
package config
