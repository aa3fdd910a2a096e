package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-secure-api/internal/auth"
	"github.com/MKhiriev/go-secure-api/internal/service"
)

type errorResponse struct {
	status  int
	message string
}

// errorStatusMap maps service and auth errors to client responses. Login
// treats missing fields as wrong credentials.
var errorStatusMap = map[error]errorResponse{
	service.ErrInvalidCredentials:  {http.StatusUnauthorized, msgInvalidCredentials},
	service.ErrInvalidDataProvided: {http.StatusUnauthorized, msgInvalidCredentials},
	auth.ErrUnauthorized:           {http.StatusUnauthorized, msgUnauthorized},
}

func responseFromError(err error) (int, string) {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, msgInternalError
}
