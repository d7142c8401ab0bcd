package wordpress

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/seasistemi/deliveryops/internal/platform/httpx"
)

// APIError is a non-2xx answer from the WordPress backend, carrying the
// user-facing message decided by the status mapping.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// HTTPStatus lets the response layer reuse the upstream status code.
func (e *APIError) HTTPStatus() int { return e.Status }

// Unwrap maps the mapped statuses onto the shared sentinels so callers can use
// errors.Is without knowing about this type.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return httpx.ErrBadRequest
	case http.StatusUnauthorized:
		return httpx.ErrUnauthorized
	case http.StatusForbidden:
		return httpx.ErrForbidden
	case http.StatusNotFound:
		return httpx.ErrNotFound
	default:
		return nil
	}
}

func newAPIError(resp *http.Response) *APIError {
	switch resp.StatusCode {
	case http.StatusBadRequest:
		// The backend ships a meaningful message on validation failures.
		if msg := bodyMessage(resp.Body); msg != "" {
			return &APIError{Status: resp.StatusCode, Message: msg}
		}
		return &APIError{Status: resp.StatusCode, Message: "Richiesta non valida"}
	case http.StatusForbidden:
		return &APIError{Status: resp.StatusCode, Message: "Non sei autorizzato ad eseguire l'azione"}
	case http.StatusNotFound:
		return &APIError{Status: resp.StatusCode, Message: "Risorsa non trovata"}
	default:
		return &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("wordpress: unexpected status %d", resp.StatusCode),
		}
	}
}

func bodyMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}
