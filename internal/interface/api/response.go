package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"hangar-service/internal/domain/errs"
	"hangar-service/pkg/logger"
)

// Response is the envelope of every API response.
type Response struct {
	Status    string    `json:"status"`
	Data      any       `json:"data,omitempty"`
	Error     *Error    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Error is the error part of a Response. Message is always safe to show to users.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	ExistingID string `json:"existingId,omitempty"`
}

func respondJSON(w http.ResponseWriter, log logger.Logger, status int, resp *Response) {
	resp.Timestamp = time.Now().UTC()
	data, err := json.Marshal(resp)
	if err != nil {
		log.Error("Failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		log.Warn("Failed to write response", "error", err)
	}
}

func respondData(w http.ResponseWriter, log logger.Logger, status int, data any) {
	respondJSON(w, log, status, &Response{Status: "success", Data: data})
}

func respondError(w http.ResponseWriter, log logger.Logger, status int, code, message string) {
	respondJSON(w, log, status, &Response{Status: "error", Error: &Error{Code: code, Message: message}})
}

// respondServiceError renders a usecase error. Details of internal and provider
// failures only reach the log.
func respondServiceError(w http.ResponseWriter, log logger.Logger, err error) {
	status := errs.HTTPStatus(err)
	apiErr := &Error{Code: errorCode(status), Message: errs.UserMessage(err)}

	var dup *errs.DuplicateFlightError
	if errors.As(err, &dup) {
		apiErr.ExistingID = dup.ExistingID
	}
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "status", status, "error", err)
	}

	respondJSON(w, log, status, &Response{Status: "error", Error: apiErr})
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "duplicate_flight"
	case http.StatusBadGateway:
		return "upstream_unavailable"
	default:
		return "internal_error"
	}
}
