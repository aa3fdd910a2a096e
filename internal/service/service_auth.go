package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-secure-api/internal/auth"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/metrics"
	"github.com/MKhiriev/go-secure-api/models"
)

// authService is the concrete implementation of AuthService.
// It holds the single configured credential pair and the gate fronting the
// active token strategy.
type authService struct {
	gate        *auth.Gate
	credentials CredentialService

	// username is the only login accepted by Login.
	username string

	// storedPassword is the PBKDF2 stored credential of the login password.
	// The plain password is never kept.
	storedPassword string

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. All state is read-only after
// construction, so the service is safe for concurrent use.
func NewAuthService(gate *auth.Gate, credentials CredentialService, username, storedPassword string, logger *logger.Logger) AuthService {
	return &authService{
		gate:           gate,
		credentials:    credentials,
		username:       username,
		storedPassword: storedPassword,
		logger:         logger,
	}
}

func (a *authService) StrategyName() string {
	return a.gate.Strategy().Name()
}

// Login verifies creds and issues a token via the active strategy.
//
// Returns:
//   - ErrInvalidDataProvided if Username or Password is empty.
//   - ErrInvalidCredentials if either does not match.
//   - A wrapped error if verification could not run or issuing failed.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.Token, error) {
	log := logger.FromContext(ctx)

	if creds.Username == "" || creds.Password == "" {
		log.Warn().Msg("login with empty username or password")
		return models.Token{}, ErrInvalidDataProvided
	}

	// the password is verified even for a wrong username so both failures
	// take the same time
	usernameOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(a.username)) == 1
	passwordOK, err := a.credentials.VerifyPassword(ctx, creds.Password, a.storedPassword)
	if err != nil {
		log.Err(err).Msg("password verification did not run")
		return models.Token{}, err
	}

	if !usernameOK || !passwordOK {
		log.Warn().Msg("invalid credentials")
		return models.Token{}, ErrInvalidCredentials
	}

	token, err := a.gate.Strategy().Issue(ctx, creds.Username)
	if err != nil {
		log.Err(err).Msg("issuing token failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Authenticate resolves header through the gate and counts the outcome.
// Failures wrap auth.ErrUnauthorized.
func (a *authService) Authenticate(ctx context.Context, header string) (models.Identity, error) {
	identity, err := a.gate.Authenticate(ctx, header)

	result, reason := metrics.ResultAllow, metrics.ReasonSuccess
	if err != nil {
		result, reason = metrics.ResultDeny, denyReason(err)
	}
	metrics.AuthResults.WithLabelValues(a.StrategyName(), result, reason).Inc()

	return identity, err
}

func denyReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingCredential):
		return metrics.ReasonMissingHeader
	case errors.Is(err, auth.ErrExpiredCredential):
		return metrics.ReasonExpiredToken
	default:
		return metrics.ReasonInvalidToken
	}
}
