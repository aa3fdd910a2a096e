package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-secure-api/internal/auth"
	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/internal/crypto"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/workers"
)

type Services struct {
	AuthService       AuthService
	CredentialService CredentialService
	AppInfoService    AppInfoService
}

// NewServices wires the services from cfg. Unless a stored password hash is
// configured, the login password is derived here, once, at startup.
func NewServices(ctx context.Context, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	strategy, err := auth.NewStrategy(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("creating auth strategy: %w", err)
	}

	pool := workers.NewPool(cfg.App.HashWorkers)
	credentialService := NewCredentialService(crypto.NewPasswordHasher(cfg.App.HashIterations), pool, logger)

	storedPassword, err := storedLoginPassword(ctx, cfg.App, credentialService)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("strategy", strategy.Name()).
		Int("hash_workers", pool.Size()).
		Msg("services created")

	return &Services{
		AuthService:       NewAuthService(auth.NewGate(strategy), credentialService, cfg.App.LoginUsername, storedPassword, logger),
		CredentialService: credentialService,
		AppInfoService:    appInfoService,
	}, nil
}

func storedLoginPassword(ctx context.Context, cfg config.App, credentials CredentialService) (string, error) {
	if cfg.LoginPasswordHash != "" {
		if _, err := crypto.ParseCredential(cfg.LoginPasswordHash); err != nil {
			return "", fmt.Errorf("%w: %w", ErrMalformedStoredPassword, err)
		}
		return cfg.LoginPasswordHash, nil
	}

	return credentials.HashPassword(ctx, cfg.LoginPassword)
}
