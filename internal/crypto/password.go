// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 iteration count applied when none is
	// configured.
	DefaultIterations = 100_000

	// SaltSize is the length of the random salt in bytes (128 bits).
	SaltSize = 16

	// KeyLength is the length of the derived key in bytes.
	KeyLength = 64

	credentialSeparator = ":"
	credentialFields    = 3
)

// pbkdf2Hasher is the private implementation of [PasswordHasher] based on
// PBKDF2-HMAC-SHA512.
type pbkdf2Hasher struct {
	iterations int
	saltSize   int
	keyLength  int

	// random is the salt source. It is crypto/rand in production and
	// replaceable in tests.
	random io.Reader
}

// NewPasswordHasher constructs a [PasswordHasher] with the given default
// iteration count. A non-positive count falls back to [DefaultIterations].
func NewPasswordHasher(iterations int) PasswordHasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &pbkdf2Hasher{
		iterations: iterations,
		saltSize:   SaltSize,
		keyLength:  KeyLength,
		random:     rand.Reader,
	}
}

// DefaultIterations implements [PasswordHasher].
func (h *pbkdf2Hasher) DefaultIterations() int {
	return h.iterations
}

// Hash implements [PasswordHasher]. Every call reads a new salt from the
// CSPRNG, so hashing the same password twice yields different strings.
func (h *pbkdf2Hasher) Hash(password string, iterations int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if iterations <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidIterations, iterations)
	}

	salt := make([]byte, h.saltSize)
	if _, err := io.ReadFull(h.random, salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSaltGeneration, err)
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, h.keyLength, sha512.New)

	return strings.Join([]string{
		strconv.Itoa(iterations),
		hex.EncodeToString(salt),
		hex.EncodeToString(key),
	}, credentialSeparator), nil
}

// Verify implements [PasswordHasher]. The key is re-derived with the stored
// salt, iteration count and key length and compared in constant time.
func (h *pbkdf2Hasher) Verify(password, stored string) bool {
	cred, err := ParseCredential(stored)
	if err != nil {
		return false
	}

	derived := pbkdf2.Key([]byte(password), cred.Salt, cred.Iterations, len(cred.Key), sha512.New)

	return subtle.ConstantTimeCompare(derived, cred.Key) == 1
}

// Credential is the decoded form of a stored credential string.
type Credential struct {
	Iterations int
	Salt       []byte
	Key        []byte
}

// ParseCredential decodes a stored credential string. It returns
// ErrMalformedCredential for anything other than three colon-separated
// fields with a positive decimal iteration count and non-empty hex salt and
// key.
func ParseCredential(stored string) (Credential, error) {
	parts := strings.Split(stored, credentialSeparator)
	if len(parts) != credentialFields {
		return Credential{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedCredential, credentialFields, len(parts))
	}

	iterations, err := strconv.Atoi(parts[0])
	if err != nil {
		return Credential{}, fmt.Errorf("%w: iterations: %w", ErrMalformedCredential, err)
	}
	if iterations <= 0 {
		return Credential{}, fmt.Errorf("%w: non-positive iterations", ErrMalformedCredential)
	}

	salt, err := hex.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return Credential{}, fmt.Errorf("%w: salt", ErrMalformedCredential)
	}

	key, err := hex.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return Credential{}, fmt.Errorf("%w: key", ErrMalformedCredential)
	}

	return Credential{Iterations: iterations, Salt: salt, Key: key}, nil
}
