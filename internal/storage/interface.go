package storage

import (
	"context"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Storage holds snapshots of live game sessions. It is a read model for
// games in progress, not a game history: entries are removed when a
// session ends and may expire on their own.
type Storage interface {
	SaveSnapshot(ctx context.Context, state *model.GameState) error
	GetSnapshot(ctx context.Context, id model.SessionID) (*model.GameState, error)
	DeleteSnapshot(ctx context.Context, id model.SessionID) error
	SessionExists(ctx context.Context, id model.SessionID) (bool, error)
	ListSessions(ctx context.Context) ([]model.SessionID, error)
}
