// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/audit"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/go-chi/chi/v5"
)

// withAudit registers the completion hook of the request. The hook is
// deferred, so exactly one access record is written on every exit path,
// including short-circuits by later middlewares.
func (h *Handler) withAudit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		raw, err := utils.ReadBody(r)
		if err != nil {
			logger.FromRequest(r).Err(err).Msg("reading request body for audit")
		}
		body, _ := audit.DecodeBody(raw)

		defer func() {
			h.audit.Record(r.Context(), audit.Exchange{
				Request: r,
				Body:    body,
				Params:  routeParams(r),
				Status:  lw.status,
				Started: started,
			})
		}()

		next.ServeHTTP(lw, r)
	})
}

// routeParams returns the URL parameters resolved by the router. They are
// only known once routing has happened further down the chain.
func routeParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}
