package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// statusRecorder remembers what a handler wrote so it can be logged
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *statusRecorder) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Flush passes through so game event streams keep working behind Logging
func (rw *statusRecorder) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Logging logs one line per request. Server errors log at error level and
// event streams at debug, since they stay open for the life of a game.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			level := slog.LevelInfo
			switch {
			case rec.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case rec.Header().Get("Content-Type") == "text/event-stream":
				level = slog.LevelDebug
			}

			attrs := append(requestAttrs(r),
				slog.Int("status", rec.status),
				slog.Int("size", rec.size),
				slog.Duration("duration", time.Since(start)),
			)
			logger.LogAttrs(r.Context(), level, "http request", attrs...)
		})
	}
}

// requestAttrs identifies a request in logs. session_id is set on the
// game routes, which all carry the session in their {id} path variable.
func requestAttrs(r *http.Request) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("request_id", GetRequestID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	}
	if id := mux.Vars(r)["id"]; id != "" {
		attrs = append(attrs, slog.String("session_id", id))
	}
	return attrs
}
