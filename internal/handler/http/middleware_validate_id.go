package http

import (
	"net/http"
	"regexp"

	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/models"
	"github.com/go-chi/chi/v5"
)

var idPattern = regexp.MustCompile(`^\d+$`)

// validateID accepts only decimal digit ids in the {id} route parameter.
func (h *Handler) validateID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !idPattern.MatchString(id) {
			logger.FromRequest(r).Warn().Msg("invalid id parameter")
			utils.WriteJSON(w, models.MessageResponse{Message: msgInvalidID}, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
