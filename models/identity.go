package models

// Identity describes the caller authenticated by the auth gate.
type Identity struct {
	// Subject is the authenticated principal. It is empty for the static
	// token strategy, which carries no identity payload.
	Subject string `json:"subject,omitempty"`

	// Strategy names the authentication strategy that accepted the caller.
	Strategy string `json:"strategy"`

	// Claims holds the decoded token payload for signed tokens.
	Claims map[string]any `json:"claims,omitempty"`
}

// Credentials is the body of a login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
