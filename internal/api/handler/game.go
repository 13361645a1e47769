package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/api/request"
	"github.com/mcoot/tictactoe-go/internal/api/response"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/session"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
)

// GameHandler handles game session endpoints
type GameHandler struct {
	sessions   *session.Manager
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(sessions *session.Manager, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		sessions:   sessions,
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "api-game")),
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	// An empty body starts a game with the defaults
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	difficulty, err := model.ParseDifficulty(req.Difficulty)
	if err != nil {
		WriteError(w, err)
		return
	}

	state, err := h.sessions.Create(r.Context(), req.PlayerName, difficulty)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.WriteGame(w, http.StatusCreated, state)
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.sessions.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	list := response.GameList{Games: make([]string, len(ids))}
	for i, id := range ids {
		list.Games[i] = string(id)
	}
	response.JSON(w, http.StatusOK, list)
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.Get(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.WriteGame(w, http.StatusOK, state)
}

// Move handles POST /api/v1/games/{id}/moves. A move into an occupied cell
// or out of turn is ignored and the unchanged state is returned.
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Index == nil {
		WriteError(w, NewInvalidRequestError("index is required"))
		return
	}

	state, err := h.sessions.Move(r.Context(), sessionID(r), *req.Index)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.WriteGame(w, http.StatusOK, state)
}

// Restart handles POST /api/v1/games/{id}/restart
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.Restart(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.WriteGame(w, http.StatusOK, state)
}

// End handles DELETE /api/v1/games/{id}
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(r.Context(), sessionID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Events handles GET /api/v1/games/{id}/events. The stream opens with the
// current status and board, then follows every update.
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if _, err := h.sessions.Get(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, func() {
		if err := h.sessions.Show(id); err != nil {
			h.logger.Debug("session not live on this server",
				slog.String("session_id", string(id)),
				slog.Any("error", err))
		}
	})
}

func sessionID(r *http.Request) model.SessionID {
	return model.SessionID(mux.Vars(r)["id"])
}
