package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicHandler writes the response after a handler panicked. requestID
// lets the page or error body point at the matching log line.
type PanicHandler func(w http.ResponseWriter, r *http.Request, requestID string)

// Recovery turns handler panics into a logged error and a 500 response.
// A panic inside a game handler usually means a controller invariant broke,
// so the session ID is logged alongside the stack.
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					attrs := append(requestAttrs(r),
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
					)
					logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered", attrs...)

					handler(w, r, GetRequestID(r.Context()))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// DefaultPanicHandler writes a plain-text 500
func DefaultPanicHandler(w http.ResponseWriter, _ *http.Request, requestID string) {
	msg := "Internal Server Error"
	if requestID != "" {
		msg += " (request " + requestID + ")"
	}
	http.Error(w, msg, http.StatusInternalServerError)
}
