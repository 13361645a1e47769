package model

import "time"

// SessionID identifies one live game session
type SessionID string

// Turn says whose move is expected next
type Turn string

const (
	TurnHuman Turn = "human"
	TurnBot   Turn = "bot"
)

// Phase is the controller's state, derived from running, turn and outcome
type Phase string

const (
	PhaseIdle        Phase = "idle"         // No game has been started
	PhaseHumanTurn   Phase = "human_turn"   // Waiting for the human's move
	PhaseBotThinking Phase = "bot_thinking" // Bot move scheduled
	PhaseTerminal    Phase = "terminal"     // Game over, waiting for restart
)

// Status messages shown to the player
const (
	StatusIdle    = "Click Start."
	StatusBotTurn = "Bot's turn"
	StatusTie     = "Tie game."
	StatusBotWins = "Computer wins!"
)

// GameState is a snapshot of one game as seen by the controller
type GameState struct {
	SessionID  SessionID  `json:"session_id,omitempty"`
	Board      Cells      `json:"board"`
	Human      Player     `json:"human"`
	Computer   Player     `json:"computer"`
	Difficulty Difficulty `json:"difficulty"`
	Turn       Turn       `json:"turn"`
	Running    bool       `json:"running"`
	Locked     bool       `json:"locked"`
	Phase      Phase      `json:"phase"`
	Status     string     `json:"status"`
	Winner     Mark       `json:"winner"`
	Tie        bool       `json:"tie"`
	Generation uint64     `json:"generation"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// AcceptsHumanMove returns true if a human move would be considered
func (g *GameState) AcceptsHumanMove() bool {
	return g.Running && !g.Locked && g.Turn == TurnHuman
}

// IsOver returns true once a winner or tie has been reached
func (g *GameState) IsOver() bool {
	return g.Phase == PhaseTerminal
}
