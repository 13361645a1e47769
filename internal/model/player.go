package model

import "strings"

const (
	// DefaultPlayerName is used when the human leaves their name blank
	DefaultPlayerName = "You"
	// ComputerName is the computer opponent's display name
	ComputerName = "Computer"
)

// Player is one side of a game. The human is X and moves first.
type Player struct {
	Name string `json:"name"`
	Mark Mark   `json:"mark"`
	IsAI bool   `json:"is_ai"`
}

// NewHumanPlayer creates the X player, defaulting a blank name
func NewHumanPlayer(name string) Player {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPlayerName
	}
	return Player{Name: name, Mark: X}
}

// NewComputerPlayer creates the O player
func NewComputerPlayer() Player {
	return Player{Name: ComputerName, Mark: O, IsAI: true}
}
