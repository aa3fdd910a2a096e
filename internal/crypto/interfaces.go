package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher derives and verifies stored credentials.
//
// A stored credential is a single text string of the form
//
//	<iterations>:<saltHex>:<derivedKeyHex>
//
// The iteration count travels with the hash, so raising the default never
// invalidates credentials created earlier.
type PasswordHasher interface {
	// Hash derives a stored credential for password with a fresh random
	// salt. It returns ErrEmptyPassword for an empty password and
	// ErrInvalidIterations when iterations is not positive.
	Hash(password string, iterations int) (string, error)

	// Verify reports whether password matches stored. Malformed input never
	// panics or errors; it simply does not verify.
	Verify(password, stored string) bool

	// DefaultIterations returns the iteration count used by callers that
	// do not pick one explicitly.
	DefaultIterations() int
}
