package handler

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/web/middleware"
	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
	"github.com/mcoot/tictactoe-go/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the start form
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	renderHome(w, r, http.StatusOK, homeView(r, "", model.DefaultDifficulty, ""))
}

func homeView(r *http.Request, name string, selected model.Difficulty, errMsg string) pages.HomeData {
	return pages.HomeData{
		PageData: layout.PageData{
			Flash: middleware.GetFlash(r.Context()),
		},
		DefaultName:  model.DefaultPlayerName,
		Difficulties: model.ValidDifficulties(),
		Selected:     selected,
		Name:         name,
		Error:        errMsg,
	}
}

func renderHome(w http.ResponseWriter, r *http.Request, status int, data pages.HomeData) {
	render(w, r, status, pages.Home(data))
}

// render writes a full page. Pages are buffered so a render error can still
// become a clean 500.
func render(w http.ResponseWriter, r *http.Request, status int, page templ.Component) {
	var buf bytes.Buffer
	if err := page.Render(r.Context(), &buf); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
