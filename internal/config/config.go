// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-secure-api server. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the auth strategy, token
	// parameters, the login account and masking keys.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the audit sinks.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// AuthStrategy selects how credentials are checked: "jwt" or "static".
	// Env: APP_AUTH_STRATEGY
	AuthStrategy string `env:"AUTH_STRATEGY"`

	// StaticToken is the shared secret accepted by the static strategy.
	// Env: APP_STATIC_TOKEN
	StaticToken string `env:"STATIC_TOKEN"`

	// TokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in issued tokens. When empty
	// the issuer is neither set nor checked.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// LoginUsername is the username accepted by POST /login.
	// Env: APP_LOGIN_USERNAME
	LoginUsername string `env:"LOGIN_USERNAME"`

	// LoginPassword is the plain password of the login account. It is hashed
	// at startup and never kept in plain form afterwards.
	// Env: APP_LOGIN_PASSWORD
	LoginPassword string `env:"LOGIN_PASSWORD"`

	// LoginPasswordHash is a pre-computed "<iterations>:<salt>:<key>"
	// credential. It takes precedence over LoginPassword.
	// Env: APP_LOGIN_PASSWORD_HASH
	LoginPasswordHash string `env:"LOGIN_PASSWORD_HASH"`

	// HashIterations is the PBKDF2 iteration count for new hashes.
	// Env: APP_HASH_ITERATIONS
	HashIterations int `env:"HASH_ITERATIONS"`

	// HashWorkers bounds how many key derivations may run at once.
	// Env: APP_HASH_WORKERS
	HashWorkers int `env:"HASH_WORKERS"`

	// SensitiveKeys replaces the default set of key substrings whose values
	// are masked in audit records. Comma separated in the environment.
	// Env: APP_SENSITIVE_KEYS
	SensitiveKeys []string `env:"SENSITIVE_KEYS" envSeparator:","`

	// Version is the semantic version of the running binary.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. ":3000").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Storage groups the configuration of the audit sinks.
type Storage struct {
	// Driver selects the sink backend: "file", "sqlite" or "postgres".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// AccessLogPath is the JSON Lines file receiving access records.
	// Env: STORAGE_ACCESS_LOG_PATH
	AccessLogPath string `env:"ACCESS_LOG_PATH"`

	// SecurityLogPath is the JSON Lines file receiving security alerts.
	// Env: STORAGE_SECURITY_LOG_PATH
	SecurityLogPath string `env:"SECURITY_LOG_PATH"`

	// BufferSize is the capacity of the asynchronous sink queue.
	// Env: STORAGE_BUFFER_SIZE
	BufferSize int `env:"BUFFER_SIZE"`

	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational sink.
type DB struct {
	// DSN is the Data Source Name used to open the database: a file path for
	// sqlite or a URL for postgres.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (the first
// source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
