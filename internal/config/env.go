package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment.
func parseEnv(cfg *StructuredConfig) error {
	return parseEnvFrom(cfg, nil)
}

// parseEnvFrom fills cfg from environ, or from the process environment when
// environ is nil. Names follow the env and envPrefix tags, e.g.
// APP_AUTH_STRATEGY or STORAGE_DB_DATABASE_URI.
func parseEnvFrom(cfg *StructuredConfig, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("reading configuration from environment: %w", err)
	}
	return nil
}
