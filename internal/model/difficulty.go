package model

import (
	"fmt"
	"strings"
)

// Difficulty selects the computer opponent's strategy
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"

	// DefaultDifficulty is used when no difficulty is given
	DefaultDifficulty = DifficultyMedium
)

// ParseDifficulty converts user input into a Difficulty. Empty input
// yields DefaultDifficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DefaultDifficulty, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
}

// Valid returns true for one of the three known difficulties
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable label for a difficulty
func (d Difficulty) DisplayName() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// ValidDifficulties returns all difficulties in increasing strength
func ValidDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}
