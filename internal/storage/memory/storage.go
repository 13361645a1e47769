package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu        sync.RWMutex
	snapshots map[model.SessionID]model.GameState
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		snapshots: make(map[model.SessionID]model.GameState),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Snapshots are stored and returned by value so callers never share state

func (s *Storage) SaveSnapshot(ctx context.Context, state *model.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[state.SessionID] = *state
	return nil
}

func (s *Storage) GetSnapshot(ctx context.Context, id model.SessionID) (*model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.snapshots[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return &state, nil
}

func (s *Storage) DeleteSnapshot(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, id)
	return nil
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.snapshots[id]
	return ok, nil
}

func (s *Storage) ListSessions(ctx context.Context) ([]model.SessionID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]model.SessionID, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
