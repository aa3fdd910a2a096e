// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

// Client-facing messages. Authentication failures always share one generic
// message whatever the cause.
const (
	msgUnauthorized       = "Unauthorized"
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidJSON        = "Invalid JSON was passed"
	msgInvalidID          = "Invalid id parameter"
	msgInjectionDetected  = "invalid input / SQL injection attempt detected"
	msgNotFound           = "Not Found"
	msgInternalError      = "Internal Server Error"
	msgBodyTooLarge       = "Request body too large"
)
