package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/session"
	"github.com/mcoot/tictactoe-go/internal/web/middleware"
	"github.com/mcoot/tictactoe-go/internal/web/sse"
	"github.com/mcoot/tictactoe-go/internal/web/templates/components"
	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
	"github.com/mcoot/tictactoe-go/internal/web/templates/pages"
)

// GameHandler handles game pages and actions
type GameHandler struct {
	sessions   *session.Manager
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(sessions *session.Manager, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		sessions:   sessions,
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "web-game")),
	}
}

// Create starts a game from the home form and redirects to its page
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderHome(w, r, http.StatusBadRequest, homeView(r, "", model.DefaultDifficulty, "Invalid form data"))
		return
	}
	name := r.FormValue("player_name")

	difficulty, err := model.ParseDifficulty(r.FormValue("difficulty"))
	if err != nil {
		renderHome(w, r, http.StatusBadRequest, homeView(r, name, model.DefaultDifficulty, "Please choose Easy, Medium or Hard"))
		return
	}

	state, err := h.sessions.Create(r.Context(), name, difficulty)
	if err != nil {
		h.logger.Error("failed to create game", slog.Any("error", err))
		renderHome(w, r, http.StatusInternalServerError, homeView(r, name, difficulty, "Could not start a game, please try again"))
		return
	}

	http.Redirect(w, r, gamePath(state.SessionID), http.StatusSeeOther)
}

// View renders the game page
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	state, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		h.notFound(w, r, err)
		return
	}

	render(w, r, http.StatusOK, pages.Game(pages.GameData{
		PageData: layout.PageData{Title: state.Human.Name + " vs " + state.Computer.Name},
		State:    *state,
		Board:    components.NewBoardView(id, state.Board, state.Locked || !state.Running),
	}))
}

// Move plays a cell. htmx requests get 204 and see the result over SSE;
// plain form posts are redirected back to the page.
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		index = -1
	}

	if _, err := h.sessions.Move(r.Context(), id, index); err != nil {
		if errors.Is(err, model.ErrInvalidIndex) {
			http.Error(w, "Invalid cell", http.StatusBadRequest)
			return
		}
		h.notFound(w, r, err)
		return
	}
	h.done(w, r, id)
}

// Restart clears the board and starts over
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if _, err := h.sessions.Restart(r.Context(), id); err != nil {
		h.notFound(w, r, err)
		return
	}
	h.done(w, r, id)
}

// Events streams HTML fragments for the board and status line
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if _, err := h.sessions.Get(r.Context(), id); err != nil {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, func() {
		_ = h.sessions.Show(id)
	})
}

func (h *GameHandler) done(w http.ResponseWriter, r *http.Request, id model.SessionID) {
	if isHTMX(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
}

// notFound sends the player home with a flash message
func (h *GameHandler) notFound(w http.ResponseWriter, r *http.Request, err error) {
	if !errors.Is(err, model.ErrSessionNotFound) {
		h.logger.Error("game request failed", slog.Any("error", err))
		render(w, r, http.StatusInternalServerError, pages.Error(pages.ErrorData{
			PageData:  layout.PageData{Title: "Error"},
			Heading:   "Something went wrong",
			Message:   "Please try again later.",
			RequestID: middleware.GetRequestID(r.Context()),
		}))
		return
	}
	middleware.SetFlash(w, "error", "Game not found")
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func sessionID(r *http.Request) model.SessionID {
	return model.SessionID(mux.Vars(r)["id"])
}

func gamePath(id model.SessionID) string {
	return "/games/" + string(id)
}
