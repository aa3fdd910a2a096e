package auth

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/config"
	"github.com/MKhiriev/go-secure-api/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSignKey     = "tokenrahasia"
	testStaticToken = "tokenrahasia13"
)

func newTestJWT(t *testing.T, issuer string, now time.Time) *jwtStrategy {
	t.Helper()
	s, err := NewJWTStrategy(testSignKey, issuer, time.Hour)
	require.NoError(t, err)
	js := s.(*jwtStrategy)
	js.now = func() time.Time { return now }
	return js
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"BEARER   abc  ", "abc"},
		{"abc", "abc"},
		{"  abc  ", "abc"},
		{"Token abc", "Token abc"},
		{"Bearer ", ""},
		{"  Bearer   ", ""},
		{"bearer\t", "bearer"},
		{"", ""},
		{"Bearer", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractToken(tt.header))
		})
	}
}

func TestStaticTokenStrategy(t *testing.T) {
	_, err := NewStaticTokenStrategy("")
	assert.ErrorIs(t, err, ErrEmptySecret)

	s, err := NewStaticTokenStrategy(testStaticToken)
	require.NoError(t, err)
	assert.Equal(t, config.StrategyStatic, s.Name())

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"exact secret", testStaticToken, nil},
		{"wrong secret", "tokenrahasia14", ErrInvalidCredential},
		{"prefix of secret", "tokenrahasia", ErrInvalidCredential},
		{"secret with suffix", testStaticToken + "x", ErrInvalidCredential},
		{"empty", "", ErrMissingCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.Authenticate(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, config.StrategyStatic, id.Strategy)
		})
	}
}

func TestStaticTokenStrategy_Issue(t *testing.T) {
	s, err := NewStaticTokenStrategy(testStaticToken)
	require.NoError(t, err)

	tok, err := s.Issue(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, testStaticToken, tok.String())
	assert.True(t, tok.ExpiresAt.IsZero())

	_, err = s.Issue(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestJWTStrategy_IssueAndAuthenticate(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := newTestJWT(t, "secure-api", now)

	tok, err := s.Issue(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, config.StrategyJWT, tok.Strategy)
	assert.Equal(t, now.Add(time.Hour), tok.ExpiresAt)

	id, err := s.Authenticate(context.Background(), tok.String())
	require.NoError(t, err)
	assert.Equal(t, "admin", id.Subject)
	assert.Equal(t, config.StrategyJWT, id.Strategy)
	assert.Equal(t, "admin", id.Claims["username"])
	assert.Equal(t, "secure-api", id.Claims["iss"])
	assert.Equal(t, now.Add(time.Hour).Unix(), id.Claims["exp"])
}

func TestJWTStrategy_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := newTestJWT(t, "", issuedAt)

	tok, err := s.Issue(context.Background(), "admin")
	require.NoError(t, err)

	s.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }

	_, err = s.Authenticate(context.Background(), tok.String())
	assert.ErrorIs(t, err, ErrExpiredCredential)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestJWTStrategy_Rejects(t *testing.T) {
	now := time.Now()
	s := newTestJWT(t, "secure-api", now)

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		t.Helper()
		signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return signed
	}
	valid := func() *models.Claims {
		return &models.Claims{
			Username: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "secure-api",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
	}

	noExpiry := valid()
	noExpiry.ExpiresAt = nil
	otherIssuer := valid()
	otherIssuer.Issuer = "someone-else"

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong key", sign(jwt.SigningMethodHS256, []byte("other-key"), valid())},
		{"wrong algorithm", sign(jwt.SigningMethodHS384, []byte(testSignKey), valid())},
		{"none algorithm", sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid())},
		{"missing expiry", sign(jwt.SigningMethodHS256, []byte(testSignKey), noExpiry)},
		{"wrong issuer", sign(jwt.SigningMethodHS256, []byte(testSignKey), otherIssuer)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Authenticate(context.Background(), tt.token)
			assert.ErrorIs(t, err, ErrInvalidCredential)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestJWTStrategy_IssuerNotCheckedWhenEmpty(t *testing.T) {
	now := time.Now()
	s := newTestJWT(t, "", now)

	claims := &models.Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "anyone",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	id, err := s.Authenticate(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, "admin", id.Subject)
}

func TestNewJWTStrategy_Validation(t *testing.T) {
	_, err := NewJWTStrategy("", "", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)

	s, err := NewJWTStrategy(testSignKey, "", 0)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTokenDuration, s.(*jwtStrategy).duration)

	_, err = s.Issue(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestNewStrategy(t *testing.T) {
	s, err := NewStrategy(config.App{AuthStrategy: config.StrategyStatic, StaticToken: testStaticToken})
	require.NoError(t, err)
	assert.Equal(t, config.StrategyStatic, s.Name())

	s, err = NewStrategy(config.App{AuthStrategy: config.StrategyJWT, TokenSignKey: testSignKey})
	require.NoError(t, err)
	assert.Equal(t, config.StrategyJWT, s.Name())

	s, err = NewStrategy(config.App{TokenSignKey: testSignKey})
	require.NoError(t, err)
	assert.Equal(t, config.StrategyJWT, s.Name())

	_, err = NewStrategy(config.App{AuthStrategy: "oauth"})
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestGate_Authenticate(t *testing.T) {
	s, err := NewStaticTokenStrategy(testStaticToken)
	require.NoError(t, err)
	g := NewGate(s)
	assert.Same(t, s, g.Strategy())

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"bearer token", "Bearer " + testStaticToken, nil},
		{"bare token", testStaticToken, nil},
		{"missing header", "", ErrMissingCredential},
		{"bearer without token", "Bearer ", ErrMissingCredential},
		{"malformed header", "Basic dXNlcjpwYXNz", ErrInvalidCredential},
		{"wrong token", "Bearer nope", ErrInvalidCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Authenticate(context.Background(), tt.header)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
