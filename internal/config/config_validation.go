// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of
// the ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.App.validate(); err != nil {
		return err
	}
	if err := cfg.Server.validate(); err != nil {
		return err
	}
	return cfg.Storage.validate()
}

func (a App) validate() error {
	switch a.AuthStrategy {
	case "":
	case StrategyJWT:
		if a.TokenSignKey == "" {
			return fmt.Errorf("%w: token sign key is required for the jwt strategy", ErrInvalidAppConfigs)
		}
	case StrategyStatic:
		if a.StaticToken == "" {
			return fmt.Errorf("%w: static token is required for the static strategy", ErrInvalidAppConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown auth strategy %q", ErrInvalidAppConfigs, a.AuthStrategy)
	}

	if a.TokenDuration < 0 || a.HashIterations < 0 || a.HashWorkers < 0 {
		return fmt.Errorf("%w: durations and counts must not be negative", ErrInvalidAppConfigs)
	}

	return nil
}

func (s Server) validate() error {
	if s.RequestTimeout < 0 || s.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", ErrInvalidServerConfigs)
	}
	return nil
}

func (s Storage) validate() error {
	if s.BufferSize < 0 {
		return fmt.Errorf("%w: buffer size must not be negative", ErrInvalidStorageConfigs)
	}

	switch s.Driver {
	case "", DriverFile:
		return nil
	case DriverSQLite, DriverPostgres:
		if s.DB.DSN == "" {
			return fmt.Errorf("%w: driver %q needs a database DSN", ErrInvalidStorageConfigs, s.Driver)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidStorageConfigs, s.Driver)
	}
}
