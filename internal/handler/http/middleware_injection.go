package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/audit"
	"github.com/MKhiriev/go-secure-api/internal/detector"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/models"
)

// withInjectionCheck rejects POST and DELETE requests whose body trips the
// injection heuristic. A tripped check raises a security alert and the
// request never reaches auth or the handler.
func (h *Handler) withInjectionCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.detector.Applies(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		raw, err := utils.ReadBody(r)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				log.Err(err).Msg("request body too large")
				utils.WriteJSON(w, models.MessageResponse{Message: msgBodyTooLarge}, http.StatusRequestEntityTooLarge)
				return
			}
			log.Err(err).Msg("reading request body failed")
			utils.WriteJSON(w, models.MessageResponse{Message: msgInvalidJSON}, http.StatusBadRequest)
			return
		}

		body, ok := audit.DecodeBody(raw)

		var verdict detector.Verdict
		if ok {
			verdict = h.detector.Inspect(r.Method, body)
		} else {
			verdict = h.detector.InspectRaw(r.Method, raw)
		}

		if verdict.Suspicious {
			h.audit.Alert(r.Context(), r, body, verdict)
			utils.WriteJSON(w, models.ErrorResponse{Error: msgInjectionDetected}, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
