// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/utils"
	"github.com/MKhiriev/go-secure-api/models"
)

// notFound is registered both as the router's NotFound and MethodNotAllowed
// handler. A known path requested with an unsupported method gets the same
// 404 as an unknown path, so route existence is not leaked.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: msgNotFound}, http.StatusNotFound)
}
