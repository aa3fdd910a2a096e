package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/models"
)

// login exchanges the configured credential pair for a token issued by the
// active auth strategy.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteJSON(w, models.MessageResponse{Message: msgInvalidJSON}, http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.Login(ctx, creds)
	if err != nil {
		status, message := responseFromError(err)
		log.Err(err).Int("status", status).Msg("login failed")
		utils.WriteJSON(w, models.MessageResponse{Message: message}, status)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{Token: token.SignedString}, http.StatusOK)
}
