package models

// MessageResponse is the body of informational and 4xx responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body returned when the injection heuristic trips.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}
