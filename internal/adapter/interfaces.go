// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a client for the secure API server.
//
// The primary abstraction is [ServerAdapter], which hides the REST transport
// from callers such as the smoke-test client. Error values defined in
// errors.go are mapped from HTTP status codes by mapHTTPError so that callers
// can use [errors.Is] (e.g. [ErrUnauthorized] for 401, [ErrRejected] when the
// injection check refused a body).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-secure-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the secure API server.
type ServerAdapter interface {
	// SetToken stores the credential attached to every later request.
	SetToken(token string)

	// Token returns the stored credential, or "" when none is set.
	Token() string

	// Root returns the greeting served on GET /.
	Root(ctx context.Context) (string, error)

	// DummyGet calls GET /dummy-get and returns the response message.
	DummyGet(ctx context.Context) (string, error)

	// Login exchanges creds for a token via POST /login and stores it
	// with SetToken.
	Login(ctx context.Context, creds models.Credentials) (string, error)

	// DummyPost sends body to the protected POST /dummy-post.
	DummyPost(ctx context.Context, body any) (string, error)

	// DummyDelete calls the protected DELETE /dummy-delete/{id}.
	DummyDelete(ctx context.Context, id string) (string, error)

	// Version returns the server version served on GET /version.
	Version(ctx context.Context) (string, error)
}
