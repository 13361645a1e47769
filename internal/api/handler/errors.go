package handler

import (
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/api/apierr"
)

// WriteError maps err to its API status and error code
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError is a 400 for a body that could not be used
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}
