// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as request tracing, access auditing,
// injection screening and authentication are handled in this package before
// requests reach the dummy endpoints or the service layer.
package http
