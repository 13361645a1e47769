package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/middleware"
	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
	"github.com/mcoot/tictactoe-go/internal/web/templates/pages"
)

// Recovery renders the error page when a page handler panics
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, requestID string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_ = pages.Error(pages.ErrorData{
		PageData:  layout.PageData{Title: "Error"},
		Heading:   "Internal Server Error",
		Message:   "Something went wrong. Start a new game and try again.",
		RequestID: requestID,
	}).Render(r.Context(), w)
}
