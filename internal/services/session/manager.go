package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/services/game"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

const (
	// IDAlphabet is the character set for session IDs
	IDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// IDLength is the length of generated session IDs
	IDLength = 12
	// maxIDAttempts bounds retries when a generated ID is already taken
	maxIDAttempts = 10
	// saveTimeout bounds snapshot writes made from controller callbacks
	saveTimeout = 5 * time.Second
)

// PresenterFactory builds the presenter that draws one session
type PresenterFactory func(id model.SessionID) game.Presenter

// closer is implemented by presenters that hold resources
type closer interface {
	Close()
}

type entry struct {
	controller *game.Controller
	presenter  game.Presenter
}

// Manager runs many independent games, one Controller per session
type Manager struct {
	mu       sync.RWMutex
	sessions map[model.SessionID]*entry

	storage    storage.Storage
	bots       *bot.Service
	presenters PresenterFactory
	clock      clock.Clock
	random     random.Random
	thinkDelay time.Duration
	logger     *slog.Logger
}

// NewManager creates a new session Manager
func NewManager(
	store storage.Storage,
	bots *bot.Service,
	presenters PresenterFactory,
	clk clock.Clock,
	rnd random.Random,
	thinkDelay time.Duration,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		sessions:   make(map[model.SessionID]*entry),
		storage:    store,
		bots:       bots,
		presenters: presenters,
		clock:      clk,
		random:     rnd,
		thinkDelay: thinkDelay,
		logger:     logger.With(slog.String("component", "session-manager")),
	}
}

// Create starts a new game in a new session
func (m *Manager) Create(ctx context.Context, playerName string, difficulty model.Difficulty) (*model.GameState, error) {
	if !m.bots.Supports(difficulty) {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidDifficulty, difficulty)
	}

	id, err := m.newID(ctx)
	if err != nil {
		return nil, err
	}

	presenter := m.presenters(id)
	opts := game.Options{
		ThinkDelay: m.thinkDelay,
		Observer:   m.observer(id),
	}
	controller := game.NewController(m.bots, presenter, m.clock, opts, m.logger.With(slog.String("session_id", string(id))))

	m.mu.Lock()
	m.sessions[id] = &entry{controller: controller, presenter: presenter}
	m.mu.Unlock()

	controller.Start(playerName, difficulty)

	m.logger.Info("session created",
		slog.String("session_id", string(id)),
		slog.String("difficulty", string(difficulty)),
	)

	return m.snapshot(id, controller), nil
}

// Get returns the current state of a session. Sessions owned by this
// process are read live; others are read from storage.
func (m *Manager) Get(ctx context.Context, id model.SessionID) (*model.GameState, error) {
	if e, ok := m.lookup(id); ok {
		return m.snapshot(id, e.controller), nil
	}
	return m.storage.GetSnapshot(ctx, id)
}

// Move plays the human's mark. Moves the game ignores (occupied cell,
// locked board, game over) are not errors; the unchanged state is returned.
func (m *Manager) Move(ctx context.Context, id model.SessionID, index int) (*model.GameState, error) {
	if !model.IsValidIndex(index) {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidIndex, index)
	}
	e, ok := m.lookup(id)
	if !ok {
		return nil, model.ErrSessionNotFound
	}

	if !e.controller.HumanMove(index) {
		m.logger.Debug("move ignored",
			slog.String("session_id", string(id)),
			slog.Int("index", index),
		)
	}
	return m.snapshot(id, e.controller), nil
}

// Restart clears the board and starts over with the same settings
func (m *Manager) Restart(ctx context.Context, id model.SessionID) (*model.GameState, error) {
	e, ok := m.lookup(id)
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	e.controller.Restart()
	return m.snapshot(id, e.controller), nil
}

// Show re-sends the session's status and board to its presenter
func (m *Manager) Show(id model.SessionID) error {
	e, ok := m.lookup(id)
	if !ok {
		return model.ErrSessionNotFound
	}
	e.controller.Show()
	return nil
}

// End stops a session and removes its snapshot
func (m *Manager) End(ctx context.Context, id model.SessionID) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		exists, err := m.storage.SessionExists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrSessionNotFound
		}
		return m.storage.DeleteSnapshot(ctx, id)
	}

	m.closeEntry(e)
	if err := m.storage.DeleteSnapshot(ctx, id); err != nil {
		return err
	}

	m.logger.Info("session ended", slog.String("session_id", string(id)))
	return nil
}

// ReapIdle ends sessions that have not changed for longer than maxIdle
// and returns how many were ended
func (m *Manager) ReapIdle(ctx context.Context, maxIdle time.Duration) int {
	cutoff := m.clock.Now().Add(-maxIdle)

	m.mu.RLock()
	var idle []model.SessionID
	for id, e := range m.sessions {
		if e.controller.State().UpdatedAt.Before(cutoff) {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	ended := 0
	for _, id := range idle {
		if err := m.End(ctx, id); err != nil && !errors.Is(err, model.ErrSessionNotFound) {
			m.logger.Warn("failed to end idle session",
				slog.String("session_id", string(id)),
				slog.Any("error", err),
			)
			continue
		}
		ended++
	}
	if ended > 0 {
		m.logger.Info("idle sessions reaped", slog.Int("count", ended))
	}
	return ended
}

// List returns the IDs of every session with a stored snapshot, including
// sessions owned by other processes sharing the store
func (m *Manager) List(ctx context.Context) ([]model.SessionID, error) {
	return m.storage.ListSessions(ctx)
}

// Count returns the number of sessions owned by this process
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown stops every session without deleting snapshots
func (m *Manager) Shutdown() {
	m.mu.Lock()
	entries := m.sessions
	m.sessions = make(map[model.SessionID]*entry)
	m.mu.Unlock()

	for _, e := range entries {
		m.closeEntry(e)
	}
}

func (m *Manager) lookup(id model.SessionID) (*entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	return e, ok
}

func (m *Manager) closeEntry(e *entry) {
	e.controller.Close()
	if c, ok := e.presenter.(closer); ok {
		c.Close()
	}
}

func (m *Manager) snapshot(id model.SessionID, c *game.Controller) *model.GameState {
	state := c.State()
	state.SessionID = id
	return &state
}

// observer persists every state change of one session
func (m *Manager) observer(id model.SessionID) func(model.GameState) {
	return func(state model.GameState) {
		state.SessionID = id
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := m.storage.SaveSnapshot(ctx, &state); err != nil {
			m.logger.Error("failed to save snapshot",
				slog.String("session_id", string(id)),
				slog.Any("error", err),
			)
		}
	}
}

func (m *Manager) newID(ctx context.Context) (model.SessionID, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := model.SessionID(m.random.String(IDLength, IDAlphabet))
		if id == "" {
			continue
		}
		if _, ok := m.lookup(id); ok {
			continue
		}
		exists, err := m.storage.SessionExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", errors.New("could not generate a unique session id")
}
