package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/api/handler"
	"github.com/mcoot/tictactoe-go/internal/api/middleware"
	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/services/session"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Sessions   *session.Manager
	HubManager *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	RegisterRoutes(r, cfg)
	return r
}

// RegisterRoutes mounts the API under /api/v1 on an existing router
func RegisterRoutes(r *mux.Router, cfg RouterConfig) {
	gameHandler := handler.NewGameHandler(cfg.Sessions, cfg.HubManager, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID)
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.End).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id}/moves", gameHandler.Move).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/restart", gameHandler.Restart).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler(cfg.Sessions)).Methods(http.MethodGet)
}

func healthHandler(sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Sessions: sessions.Count()})
	}
}
