package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/api/apierr"
	"github.com/mcoot/tictactoe-go/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// The JSON error body carries the request ID.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, requestID string) {
	apierr.WriteError(w, apierr.NewPanicError(requestID))
}
