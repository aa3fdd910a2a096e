package auth

import (
	"context"
	"crypto/subtle"

	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/models"
)

type staticTokenStrategy struct {
	secret []byte
}

// NewStaticTokenStrategy accepts exactly one shared secret.
func NewStaticTokenStrategy(secret string) (Strategy, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &staticTokenStrategy{secret: []byte(secret)}, nil
}

func (s *staticTokenStrategy) Name() string {
	return config.StrategyStatic
}

// Authenticate compares token with the secret in constant time.
func (s *staticTokenStrategy) Authenticate(_ context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, ErrMissingCredential
	}
	if subtle.ConstantTimeCompare([]byte(token), s.secret) != 1 {
		return models.Identity{}, ErrInvalidCredential
	}
	return models.Identity{Strategy: config.StrategyStatic}, nil
}

// Issue hands out the shared secret itself; it never expires.
func (s *staticTokenStrategy) Issue(_ context.Context, username string) (models.Token, error) {
	if username == "" {
		return models.Token{}, ErrEmptySubject
	}
	return models.Token{SignedString: string(s.secret), Strategy: config.StrategyStatic}, nil
}
