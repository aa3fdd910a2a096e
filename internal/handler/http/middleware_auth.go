package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/models"
)

// auth is an HTTP middleware that gates protected routes.
//
// It passes the "Authorization" header to [service.AuthService.Authenticate]
// and, on success, stores the identity in the request context under
// [utils.IdentityCtxKey]. Every failure is answered with the same generic
// 401; the cause only reaches the log.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		identity, err := h.services.AuthService.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			log.Err(err).Str("strategy", h.services.AuthService.StrategyName()).Msg("authentication failed")
			status, message := responseFromError(err)
			utils.WriteJSON(w, models.MessageResponse{Message: message}, status)
			return
		}

		ctx := context.WithValue(r.Context(), utils.IdentityCtxKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
