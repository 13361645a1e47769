package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// SaveSnapshot writes the snapshot and refreshes its TTL
func (s *Storage) SaveSnapshot(ctx context.Context, state *model.GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKey(state.SessionID), data, s.cfg.SessionTTL)
	pipe.SAdd(ctx, sessionIndexKey(), string(state.SessionID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSnapshot(ctx context.Context, id model.SessionID) (*model.GameState, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var state model.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Storage) DeleteSnapshot(ctx context.Context, id model.SessionID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.SRem(ctx, sessionIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	exists, err := s.client.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// ListSessions returns the IDs of sessions whose snapshot has not expired.
// Index entries for expired snapshots are pruned along the way.
func (s *Storage) ListSessions(ctx context.Context) ([]model.SessionID, error) {
	members, err := s.client.SMembers(ctx, sessionIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []model.SessionID{}, nil
	}

	pipe := s.client.Pipeline()
	checks := make([]*redis.IntCmd, len(members))
	for i, m := range members {
		checks[i] = pipe.Exists(ctx, sessionKey(model.SessionID(m)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	ids := make([]model.SessionID, 0, len(members))
	var stale []any
	for i, m := range members {
		if checks[i].Val() > 0 {
			ids = append(ids, model.SessionID(m))
		} else {
			stale = append(stale, m)
		}
	}
	if len(stale) > 0 {
		if err := s.client.SRem(ctx, sessionIndexKey(), stale...).Err(); err != nil {
			return nil, err
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
