package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/models"
	"github.com/golang-jwt/jwt/v5"
)

type jwtStrategy struct {
	signKey  []byte
	issuer   string
	duration time.Duration
	now      func() time.Time
}

// NewJWTStrategy signs and verifies HS256 tokens with signKey. An empty
// issuer is neither set on issued tokens nor checked on presented ones. A
// non-positive duration falls back to [config.DefaultTokenDuration].
func NewJWTStrategy(signKey, issuer string, duration time.Duration) (Strategy, error) {
	if signKey == "" {
		return nil, ErrEmptySecret
	}
	if duration <= 0 {
		duration = config.DefaultTokenDuration
	}

	return &jwtStrategy{
		signKey:  []byte(signKey),
		issuer:   issuer,
		duration: duration,
		now:      time.Now,
	}, nil
}

func (s *jwtStrategy) Name() string {
	return config.StrategyJWT
}

// Authenticate verifies signature, algorithm, expiry and, when configured,
// the issuer. The identity carries the decoded claims.
func (s *jwtStrategy) Authenticate(_ context.Context, tokenString string) (models.Identity, error) {
	if tokenString == "" {
		return models.Identity{}, ErrMissingCredential
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &models.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.signKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, fmt.Errorf("%w: %w", ErrExpiredCredential, err)
		}
		return models.Identity{}, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	subject := claims.Username
	if subject == "" {
		subject = claims.Subject
	}

	return models.Identity{
		Subject:  subject,
		Strategy: config.StrategyJWT,
		Claims:   claimsMap(claims),
	}, nil
}

// Issue signs a token for username valid for the configured duration.
func (s *jwtStrategy) Issue(_ context.Context, username string) (models.Token, error) {
	if username == "" {
		return models.Token{}, ErrEmptySubject
	}

	now := s.now()
	expiresAt := now.Add(s.duration)
	claims := &models.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		SignedString: signed,
		Strategy:     config.StrategyJWT,
		ExpiresAt:    expiresAt.Truncate(time.Second),
	}, nil
}

func claimsMap(c *models.Claims) map[string]any {
	m := map[string]any{"username": c.Username}
	if c.Subject != "" {
		m["sub"] = c.Subject
	}
	if c.Issuer != "" {
		m["iss"] = c.Issuer
	}
	if c.IssuedAt != nil {
		m["iat"] = c.IssuedAt.Unix()
	}
	if c.ExpiresAt != nil {
		m["exp"] = c.ExpiresAt.Unix()
	}
	return m
}
