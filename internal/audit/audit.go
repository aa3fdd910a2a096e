// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package audit turns finished requests into masked access records and
// tripped injection checks into security alerts.
//
// Nothing reaches the sink before it has been through the masking engine.
// Sink failures are logged and counted, never returned to the request path.
package audit

import (
	"context"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/detector"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/mask"
	"github.com/MKhiriev/go-secure-api/internal/metrics"
	"github.com/MKhiriev/go-secure-api/internal/store"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/models"
)

const authorizationHeader = "authorization"

// IDGenerator produces unique entry ids.
type IDGenerator interface {
	Generate() string
}

// Exchange is one finished request as seen by the completion hook.
type Exchange struct {
	Request *http.Request

	// Body is the decoded request body, unmasked.
	Body mask.Value

	// Params are the route parameters resolved by the router.
	Params map[string]string

	// Status is the status written to the client; zero means 200.
	Status int

	Started time.Time
}

// Logger writes access records and security alerts.
type Logger struct {
	sink    store.AuditStorage
	keys    mask.SensitiveKeySet
	ids     IDGenerator
	console *logger.Logger
	now     func() time.Time
}

func NewLogger(sink store.AuditStorage, keys mask.SensitiveKeySet, ids IDGenerator, console *logger.Logger) *Logger {
	return &Logger{
		sink:    sink,
		keys:    keys,
		ids:     ids,
		console: console,
		now:     time.Now,
	}
}

// Keys returns the sensitive key set used for masking.
func (l *Logger) Keys() mask.SensitiveKeySet {
	return l.keys
}

// Record builds the access record for ex, appends it to the sink and
// mirrors a one-line summary on the console logger.
func (l *Logger) Record(ctx context.Context, ex Exchange) models.AuditRecord {
	record := l.BuildRecord(ctx, ex)

	status := strconv.Itoa(record.Status)
	metrics.RequestsTotal.WithLabelValues(record.Method, status).Inc()
	metrics.RequestDuration.WithLabelValues(record.Method, status).Observe(float64(record.DurationMs) / 1000)

	l.console.Info().
		Str("id", record.ID).
		Str("method", record.Method).
		Str("path", record.Path).
		Int("status", record.Status).
		Int64("duration_ms", record.DurationMs).
		Msg("[ACCESS]")

	if err := l.sink.AppendRecord(ctx, record); err != nil {
		l.console.Err(err).Str("func", "*Logger.Record").Msg("error appending access record")
	}

	return record
}

// BuildRecord assembles the masked access record without writing it.
func (l *Logger) BuildRecord(ctx context.Context, ex Exchange) models.AuditRecord {
	r := ex.Request
	now := l.now()

	status := ex.Status
	if status == 0 {
		status = http.StatusOK
	}

	return models.AuditRecord{
		ID:         l.ids.Generate(),
		TraceID:    utils.GetTraceIDFromContext(ctx),
		Time:       now,
		Method:     r.Method,
		Path:       r.URL.Path,
		Status:     status,
		DurationMs: now.Sub(ex.Started).Milliseconds(),
		Headers:    l.maskHeaders(r.Header),
		Body:       mask.Mask(ex.Body, l.keys),
		Query:      l.maskFlat(mask.FromValues(r.URL.Query())),
		Params:     mask.Mask(mask.FromStringMap(ex.Params), l.keys),
		IP:         clientIP(r),
		Protocol:   protocol(r),
		Host:       mask.MaskString(r.Host),
		UserAgent:  mask.MaskString(r.UserAgent()),
		Referrer:   mask.MaskString(r.Referer()),
	}
}

// Alert records a tripped injection check. Only the masked body and the
// length of the serialized raw body are kept.
func (l *Logger) Alert(ctx context.Context, r *http.Request, body mask.Value, verdict detector.Verdict) models.SecurityAlert {
	alert := models.SecurityAlert{
		ID:         l.ids.Generate(),
		TraceID:    utils.GetTraceIDFromContext(ctx),
		Time:       l.now(),
		Reason:     detector.Reason,
		Method:     r.Method,
		Path:       r.URL.Path,
		MaskedBody: mask.Mask(body, l.keys),
		RawLength:  verdict.RawLength,
	}

	metrics.InjectionAlerts.WithLabelValues(alert.Method, verdict.Token).Inc()

	l.console.Warn().
		Str("id", alert.ID).
		Str("method", alert.Method).
		Str("path", alert.Path).
		Int("raw_length", alert.RawLength).
		Msg("[SEC] " + alert.Reason)

	if err := l.sink.AppendAlert(ctx, alert); err != nil {
		l.console.Err(err).Str("func", "*Logger.Alert").Msg("error appending security alert")
	}

	return alert
}

// maskHeaders masks a header mapping with maskFlat; the authorization
// header is always fully masked whatever the configured key set.
func (l *Logger) maskHeaders(h http.Header) mask.Value {
	return l.maskFlat(mask.FromHeader(h), authorizationHeader)
}

// maskFlat masks a mapping of repeatable string values such as headers or
// query parameters. A repeated entry is still one field, so every value
// under a sensitive key (or one of always) is fully masked.
func (l *Logger) maskFlat(v mask.Value, always ...string) mask.Value {
	masked := mask.Mask(v, l.keys)
	for _, key := range v.Keys() {
		if !l.keys.Matches(key) && !slices.Contains(always, key) {
			continue
		}
		field, _ := v.Field(key)
		masked = masked.With(key, maskAll(field))
	}
	return masked
}

// maskAll fully masks every scalar of a string or a sequence of strings.
func maskAll(v mask.Value) mask.Value {
	switch v.Kind() {
	case mask.KindNull:
		return v
	case mask.KindSequence:
		items := v.Items()
		for i, item := range items {
			items[i] = maskAll(item)
		}
		return mask.Sequence(items...)
	default:
		return mask.String(mask.MaskString(v.Text()))
	}
}

// DecodeBody turns a raw request body into the value recorded for it. An
// empty body is null. ok is false for a non-empty body that is not JSON; the
// returned value is then the whole body as one fully masked string.
func DecodeBody(raw []byte) (body mask.Value, ok bool) {
	if len(raw) == 0 {
		return mask.Null(), true
	}

	body, err := mask.Parse(raw)
	if err != nil {
		return mask.String(mask.MaskString(string(raw))), false
	}
	return body, true
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func protocol(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
