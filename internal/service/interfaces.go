package service

import (
	"context"

	"github.com/MKhiriev/go-secure-api/models"
)

// AuthService checks the login credential pair and gates protected routes.
type AuthService interface {
	// Login verifies creds against the configured credential pair and
	// issues a token through the active strategy.
	Login(ctx context.Context, creds models.Credentials) (models.Token, error)

	// Authenticate resolves an Authorization header value to an identity.
	Authenticate(ctx context.Context, header string) (models.Identity, error)

	// StrategyName names the active auth strategy.
	StrategyName() string
}

// CredentialService runs password key derivation on the bounded KDF pool.
type CredentialService interface {
	HashPassword(ctx context.Context, password string) (string, error)
	VerifyPassword(ctx context.Context, password, stored string) (bool, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
