package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"backoffice/internal/apiclient"
	"backoffice/internal/middleware"
	"backoffice/internal/model"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeRaw passes an upstream JSON body through unchanged.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	if len(body) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	logger.Error().
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("error", message).
		Int("status", status).
		Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: chimw.GetReqID(r.Context()),
	})
}

// writeFailure maps a service error onto a response.
func writeFailure(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	if errors.Is(err, context.Canceled) {
		// The console went away; nobody reads the answer.
		logger.Debug().Str("path", r.URL.Path).Msg("request cancelled")
		return
	}

	resp := model.ErrorResponse{CorrelationID: chimw.GetReqID(r.Context())}
	status := statusFor(err)

	var verr *model.ValidationError
	var derr *model.DomainError
	var aerr *apiclient.APIError
	switch {
	case errors.As(err, &verr):
		resp.Error = model.ErrCodeValidation
		resp.Message = "Please correct the highlighted fields"
		resp.Fields = verr.Fields
	case errors.Is(err, model.ErrNotAuthenticated):
		resp.Error = model.ErrCodeUnauthorised
		resp.Message = model.ErrNotAuthenticated.Message
		resp.Redirect = middleware.LoginPath
	case errors.Is(err, model.ErrNotFound):
		resp.Error = model.ErrCodeNotFound
		resp.Message = model.ErrNotFound.Message
	case errors.As(err, &derr):
		resp.Error = derr.Code
		resp.Message = derr.Message
	case errors.As(err, &aerr):
		resp.Error = model.ErrCodeUpstream
		resp.Message = fmt.Sprintf("store API answered %d", aerr.StatusCode)
	case errors.Is(err, context.DeadlineExceeded):
		resp.Error = model.ErrCodeUpstream
		resp.Message = "store API timed out"
	default:
		resp.Error = model.ErrCodeInternalError
		resp.Message = "internal server error"
	}

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).
		Str("request_id", resp.CorrelationID).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("request failed")

	writeJSON(w, status, resp)
}

// statusFor picks the HTTP status a service error maps to.
func statusFor(err error) int {
	var verr *model.ValidationError
	var derr *model.DomainError
	var aerr *apiclient.APIError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrSessionChecking):
		return http.StatusServiceUnavailable
	case errors.Is(err, model.ErrInvalidTransition):
		return http.StatusConflict
	case errors.As(err, &derr):
		return http.StatusBadRequest
	case errors.As(err, &aerr):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewDomainError(model.ErrCodeInvalidJSON, "request body is required")
		}
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	return nil
}

func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
