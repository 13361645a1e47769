package model

import "fmt"

// Mark is the content of a single board cell
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

// String returns "X", "O", or "" for an empty cell
func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other player's mark. Empty has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// MarshalText encodes the mark as "X", "O", or ""
func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes "X", "O", or ""
func (m *Mark) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*m = Empty
	case "X", "x":
		*m = X
	case "O", "o":
		*m = O
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMark, text)
	}
	return nil
}
