package config

import (
	"runtime"
	"time"
)

// Auth strategy names accepted in App.AuthStrategy.
const (
	StrategyJWT    = "jwt"
	StrategyStatic = "static"
)

// Storage drivers accepted in Storage.Driver.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Default values applied when no source sets a field.
const (
	DefaultHTTPAddress     = ":3000"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultStaticToken     = "tokenrahasia13"
	DefaultTokenSignKey    = "tokenrahasia"
	DefaultTokenDuration   = time.Hour
	DefaultLoginUsername   = "admin"
	DefaultLoginPassword   = "password123"
	DefaultHashIterations  = 100_000
	DefaultAccessLogPath   = "access.log"
	DefaultSecurityLogPath = "security.log"
	DefaultBufferSize      = 1024
)

// Defaults returns the configuration used when nothing else is set.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			AuthStrategy:   StrategyJWT,
			StaticToken:    DefaultStaticToken,
			TokenSignKey:   DefaultTokenSignKey,
			TokenDuration:  DefaultTokenDuration,
			LoginUsername:  DefaultLoginUsername,
			LoginPassword:  DefaultLoginPassword,
			HashIterations: DefaultHashIterations,
			HashWorkers:    runtime.GOMAXPROCS(0),
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Storage: Storage{
			Driver:          DriverFile,
			AccessLogPath:   DefaultAccessLogPath,
			SecurityLogPath: DefaultSecurityLogPath,
			BufferSize:      DefaultBufferSize,
		},
	}
}
