// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth implements the bearer credential gate that protects routes.
//
// Two interchangeable [Strategy] implementations exist: a single shared
// static token and HS256 signed tokens. Exactly one is active per process,
// selected from configuration at startup.
package auth

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/models"
)

//go:generate mockgen -source=strategy.go -destination=../mock/auth_strategy_mock.go -package=mock

// Strategy verifies presented credentials and issues new ones.
type Strategy interface {
	// Name identifies the strategy in logs and tokens ("static" or "jwt").
	Name() string
	// Authenticate checks token and returns the caller identity. Every
	// failure wraps ErrUnauthorized.
	Authenticate(ctx context.Context, token string) (models.Identity, error)
	// Issue returns the credential handed to username after a successful
	// login.
	Issue(ctx context.Context, username string) (models.Token, error)
}

// NewStrategy builds the strategy selected by cfg.AuthStrategy. An empty
// name selects the signed token strategy.
func NewStrategy(cfg config.App) (Strategy, error) {
	switch cfg.AuthStrategy {
	case config.StrategyStatic:
		return NewStaticTokenStrategy(cfg.StaticToken)
	case config.StrategyJWT, "":
		return NewJWTStrategy(cfg.TokenSignKey, cfg.TokenIssuer, cfg.TokenDuration)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.AuthStrategy)
	}
}
