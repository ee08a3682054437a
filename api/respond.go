package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteStatusJSON(w, http.StatusOK, data)
}

// WriteStatusJSON marshals data before touching the response so a marshal
// failure can still become a clean 500.
func (r Responder) WriteStatusJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		r.writeInternalError(w)
		return
	}

	// Check if response is too large (e.g., > 10MB)
	const maxResponseSize = 10 * 1024 * 1024
	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")
		r.writeInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteMessage(w http.ResponseWriter, status int, message string) {
	r.WriteStatusJSON(w, status, MessageResponse{Message: message})
}

// WriteError renders err with the status it carries. Errors that are not
// *errs.ApiErr, and every 500, are logged and answered with a generic body.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.writeInternalError(w)
		return
	}
	if apiErr.StatusCode >= http.StatusInternalServerError && apiErr.StatusCode != http.StatusBadGateway &&
		apiErr.StatusCode != http.StatusServiceUnavailable {
		r.logger.Error().Str("error", apiErr.GetFullError()).Msg("internal error")
		r.writeInternalError(w)
		return
	}

	response := ErrorResponse{
		Error:   apiErr.Message(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}
	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Warn().Str("error", apiErr.GetFullError()).Msg("upstream failure")
	}
	r.WriteStatusJSON(w, apiErr.StatusCode, response)
}

func (r Responder) writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`{"error":"Internal Server Error","status":"error"}`))
}
