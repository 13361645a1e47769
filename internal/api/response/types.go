package response

import (
	"time"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/rules"
)

// Player represents a player in API responses
type Player struct {
	Name string `json:"name"`
	Mark string `json:"mark"`
	IsAI bool   `json:"is_ai"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		Name: p.Name,
		Mark: p.Mark.String(),
		IsAI: p.IsAI,
	}
}

// Game is the API view of a session's state
type Game struct {
	ID          string    `json:"id"`
	Board       [9]string `json:"board"`
	Human       Player    `json:"human"`
	Computer    Player    `json:"computer"`
	Difficulty  string    `json:"difficulty"`
	Phase       string    `json:"phase"`
	Turn        string    `json:"turn"`
	Status      string    `json:"status"`
	Running     bool      `json:"running"`
	Locked      bool      `json:"locked"`
	Winner      string    `json:"winner,omitempty"`
	WinningLine []int     `json:"winning_line,omitempty"`
	Tie         bool      `json:"tie"`
	Generation  uint64    `json:"generation"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GameFromModel converts a model.GameState
func GameFromModel(s *model.GameState) Game {
	g := Game{
		ID:         string(s.SessionID),
		Human:      PlayerFromModel(s.Human),
		Computer:   PlayerFromModel(s.Computer),
		Difficulty: string(s.Difficulty),
		Phase:      string(s.Phase),
		Turn:       string(s.Turn),
		Status:     s.Status,
		Running:    s.Running,
		Locked:     s.Locked,
		Winner:     s.Winner.String(),
		Tie:        s.Tie,
		Generation: s.Generation,
		UpdatedAt:  s.UpdatedAt,
	}
	for i, m := range s.Board {
		g.Board[i] = m.String()
	}
	if line, ok := rules.WinningLine(s.Board); ok {
		g.WinningLine = line[:]
	}
	return g
}

// GameList lists the sessions with a stored snapshot
type GameList struct {
	Games []string `json:"games"`
}

// Health is the health check response
type Health struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}
