package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/crypto"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/metrics"
	"github.com/MKhiriev/go-secure-api/internal/workers"
)

// credentialService dispatches every key derivation through a bounded pool
// so concurrent logins cannot starve request handling of CPU.
type credentialService struct {
	hasher crypto.PasswordHasher
	pool   *workers.Pool

	logger *logger.Logger
}

func NewCredentialService(hasher crypto.PasswordHasher, pool *workers.Pool, logger *logger.Logger) CredentialService {
	return &credentialService{
		hasher: hasher,
		pool:   pool,
		logger: logger,
	}
}

// HashPassword derives a stored credential with the hasher's default
// iteration count.
func (s *credentialService) HashPassword(ctx context.Context, password string) (string, error) {
	var stored string
	err := s.pool.Do(ctx, func() error {
		defer observe(metrics.OperationHash)()

		var err error
		stored, err = s.hasher.Hash(password, s.hasher.DefaultIterations())
		return err
	})
	if err != nil {
		s.logger.Err(err).Str("func", "*credentialService.HashPassword").Msg("password hashing failed")
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	return stored, nil
}

// VerifyPassword reports whether password matches stored. A malformed stored
// credential does not verify; only a cancelled wait for a pool slot is an
// error.
func (s *credentialService) VerifyPassword(ctx context.Context, password, stored string) (bool, error) {
	var ok bool
	err := s.pool.Do(ctx, func() error {
		defer observe(metrics.OperationVerify)()

		ok = s.hasher.Verify(password, stored)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrVerifyingPassword, err)
	}

	return ok, nil
}

func observe(operation string) func() {
	start := time.Now()
	metrics.HashInFlight.Inc()
	return func() {
		metrics.HashInFlight.Dec()
		metrics.HashDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
