package response

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/tictactoe-go/internal/model"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteGame writes a game snapshot. Snapshots go stale as soon as the
// computer moves, so they are never cached.
func WriteGame(w http.ResponseWriter, status int, state *model.GameState) {
	w.Header().Set("Cache-Control", "no-store")
	JSON(w, status, GameFromModel(state))
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
