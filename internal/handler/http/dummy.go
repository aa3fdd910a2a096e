package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/audit"
	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/mask"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Congratulations! Server running on port %s", h.port)
}

func (h *Handler) dummyGet(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: "This is a dummy GET API"}, http.StatusOK)
}

// dummyPost echoes the body back to the caller. Only the masked body is
// written to the console log.
func (h *Handler) dummyPost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	raw, err := utils.ReadBody(r)
	if err != nil {
		log.Err(err).Msg("reading request body failed")
		utils.WriteJSON(w, models.MessageResponse{Message: msgInvalidJSON}, http.StatusBadRequest)
		return
	}

	body, ok := audit.DecodeBody(raw)
	if !ok {
		log.Warn().Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.MessageResponse{Message: msgInvalidJSON}, http.StatusBadRequest)
		return
	}
	if body.IsNull() {
		body = mask.Mapping(nil)
	}

	echoed, err := json.Marshal(body)
	if err != nil {
		log.Err(err).Msg("encoding request body failed")
		utils.WriteJSON(w, models.MessageResponse{Message: msgInternalError}, http.StatusInternalServerError)
		return
	}

	if masked, err := json.Marshal(mask.Mask(body, h.audit.Keys())); err == nil {
		log.Info().Str("subject", subject(r)).RawJSON("body", masked).Msg("dummy POST received")
	}

	utils.WriteJSON(w, models.MessageResponse{
		Message: "This is a dummy POST API, you sent: " + string(echoed),
	}, http.StatusOK)
}

func (h *Handler) dummyDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	logger.FromRequest(r).Info().Str("subject", subject(r)).Str("id", id).Msg("simulated deletion")

	utils.WriteJSON(w, models.MessageResponse{
		Message: fmt.Sprintf("This is a dummy DELETE API. Item with id %s has been deleted (simulated).", id),
	}, http.StatusOK)
}

// subject names the caller the auth middleware admitted.
func subject(r *http.Request) string {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		return ""
	}
	return identity.Subject
}
