package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a credential handed out by POST /login.
//
// SignedString is what the client sends back in the "Authorization" header.
// For the static strategy it is the shared secret itself and ExpiresAt is
// zero.
type Token struct {
	// SignedString is the compact credential string.
	SignedString string `json:"-"`

	// Strategy names the auth strategy that issued the token.
	Strategy string `json:"-"`

	// ExpiresAt is the expiry of a signed token.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact credential string.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}

// Claims is the payload of a signed token. Username is the only private
// claim; expiry and issuer use the registered claim set (RFC 7519).
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
