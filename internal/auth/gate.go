package auth

import (
	"context"

	"github.com/MKhiriev/go-secure-api/models"
)

// Gate fronts the active strategy for protected routes.
type Gate struct {
	strategy Strategy
}

func NewGate(strategy Strategy) *Gate {
	return &Gate{strategy: strategy}
}

// Strategy returns the strategy the gate delegates to.
func (g *Gate) Strategy() Strategy {
	return g.strategy
}

// Authenticate resolves the Authorization header value to an identity. An
// empty credential fails with ErrMissingCredential before the strategy is
// consulted.
func (g *Gate) Authenticate(ctx context.Context, header string) (models.Identity, error) {
	token := ExtractToken(header)
	if token == "" {
		return models.Identity{}, ErrMissingCredential
	}
	return g.strategy.Authenticate(ctx, token)
}
