package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// serverError is the union of the two error bodies the server sends.
type serverError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	var parsed serverError
	if err := json.Unmarshal(resp.Body(), &parsed); err == nil {
		switch {
		case parsed.Error != "":
			body = parsed.Error
		case parsed.Message != "":
			body = parsed.Message
		}
	}

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		if parsed.Error != "" {
			return fmt.Errorf("%w: %s", ErrRejected, body)
		}
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}
