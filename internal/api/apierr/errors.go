package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidDifficulty = "INVALID_DIFFICULTY"
	CodeInvalidIndex      = "INVALID_INDEX"
	CodeSessionNotFound   = "SESSION_NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Game session not found"}}
	case errors.Is(err, model.ErrInvalidDifficulty):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDifficulty, "Difficulty must be easy, medium or hard"}}
	case errors.Is(err, model.ErrInvalidIndex):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidIndex, "Index must be between 0 and 8"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewPanicError is the 500 sent after a recovered panic
func NewPanicError(requestID string) error {
	msg := "Internal server error"
	if requestID != "" {
		msg += " (request " + requestID + ")"
	}
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, msg}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
