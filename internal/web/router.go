package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/services/session"
	"github.com/mcoot/tictactoe-go/internal/web/handler"
	"github.com/mcoot/tictactoe-go/internal/web/middleware"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger     *slog.Logger
	Sessions   *session.Manager
	HubManager *sse.HubManager
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	RegisterRoutes(r, cfg)
	return r
}

// RegisterRoutes mounts the HTML pages on an existing router
func RegisterRoutes(r *mux.Router, cfg RouterConfig) {
	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler()
	gameHandler := handler.NewGameHandler(cfg.Sessions, hubManager, cfg.Logger)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.RequestID)
	pages.Use(middleware.Recovery(cfg.Logger))
	pages.Use(middleware.Logging(cfg.Logger))
	pages.Use(middleware.Flash())

	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}", gameHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/games/{id}/move", gameHandler.Move).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}/restart", gameHandler.Restart).Methods(http.MethodPost)
	pages.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)
}
