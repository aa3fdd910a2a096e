// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/MKhiriev/go-secure-api/internal/mask"
)

// AuditRecord is one line of the access log. It is assembled once the
// response has been written and is never modified afterwards.
//
// Every attacker-controllable field (headers, body, query, params) holds the
// output of the masking engine, never the raw request data.
type AuditRecord struct {
	// ID is a lexicographically sortable identifier (ULID).
	ID string `json:"id"`

	// TraceID correlates the record with console log lines of the request.
	TraceID string `json:"trace_id,omitempty"`

	// Time is the moment the response was finalized.
	Time time.Time `json:"time"`

	Method string `json:"method"`

	// Path is the request path; the query is recorded masked in Query.
	Path string `json:"path"`

	// Status is the final HTTP status code sent to the client.
	Status int `json:"status"`

	// DurationMs is the time between request entry and response completion.
	DurationMs int64 `json:"duration_ms"`

	Headers mask.Value `json:"headers"`
	Body    mask.Value `json:"body"`
	Query   mask.Value `json:"query"`
	Params  mask.Value `json:"params"`

	// IP is the client address as seen by the server.
	IP string `json:"ip"`

	// Protocol is the request scheme ("http" or "https").
	Protocol string `json:"protocol"`

	// Host, UserAgent and Referrer are always fully masked.
	Host      string `json:"host"`
	UserAgent string `json:"user_agent"`
	Referrer  string `json:"referrer"`
}

// SecurityAlert is one line of the security log, written when the injection
// heuristic trips.
type SecurityAlert struct {
	ID      string    `json:"id"`
	TraceID string    `json:"trace_id,omitempty"`
	Time    time.Time `json:"time"`
	Reason  string    `json:"reason"`
	Method  string    `json:"method"`
	Path    string    `json:"path"`

	// MaskedBody is the request body after masking.
	MaskedBody mask.Value `json:"masked_body"`

	// RawLength is the length of the serialized raw body. The raw body
	// itself is never recorded.
	RawLength int `json:"raw_length"`
}
