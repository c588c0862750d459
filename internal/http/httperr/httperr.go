// Package httperr maps domain errors onto HTTP responses.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MrJamesThe3rd/mockuments/internal/document"
)

type response struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Status returns the HTTP status code for err.
func Status(err error) int {
	switch {
	case errors.Is(err, document.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, document.ErrConfiguration), errors.Is(err, document.ErrLookup):
		return http.StatusUnprocessableEntity
	case errors.Is(err, document.ErrExportInProgress):
		return http.StatusConflict
	case errors.Is(err, document.ErrCapture):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// Write sends err as a JSON error body. Capture and internal failures are
// logged in full and reported with a generic message.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	body := response{Error: err.Error()}

	var verr *document.ValidationError
	if errors.As(err, &verr) {
		body.Field = verr.Field
	}

	switch status {
	case http.StatusBadGateway:
		body.Error = "document rendering failed"
	case http.StatusInternalServerError:
		body.Error = "internal error"
	}

	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}

	JSON(w, r, status, body)
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}
