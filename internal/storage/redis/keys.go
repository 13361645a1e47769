package redis

import (
	"fmt"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// Key prefix for all tic-tac-toe data
const keyPrefix = "ttt"

// sessionKey returns the Redis key for a session snapshot
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionIndexKey returns the Redis key for the SET of known session IDs
func sessionIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}
