package http

import "net/http"

// version answers GET /version with the release string as plain text.
func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(h.services.AppInfoService.GetAppVersion(r.Context()))); err != nil {
		h.logger.Err(err).Str("func", "*Handler.version").Msg("error writing version response")
	}
}
