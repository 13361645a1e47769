package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/middleware"
)

// Logging creates logging middleware for the web interface
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// RequestID tags web requests with an X-Request-ID
func RequestID(next http.Handler) http.Handler {
	return middleware.RequestID(next)
}

// GetRequestID returns the ID RequestID assigned to this request
func GetRequestID(ctx context.Context) string {
	return middleware.GetRequestID(ctx)
}
