package request

// CreateGameRequest is the request body for starting a game
type CreateGameRequest struct {
	PlayerName string `json:"player_name"`
	Difficulty string `json:"difficulty,omitempty"`
}

// MoveRequest is the request body for a human move. Index is a pointer so
// a missing field is distinguishable from cell 0.
type MoveRequest struct {
	Index *int `json:"index"`
}
