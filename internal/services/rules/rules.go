// Package rules decides whether a board has a winner or is a tie.
package rules

import "github.com/mcoot/tictactoe-go/internal/model"

// Outcome classifies a board position
type Outcome int

const (
	InProgress Outcome = iota
	Win
	Draw
)

// Winner returns the mark owning the first complete line, scanning
// model.Lines in order
func Winner(cells model.Cells) (model.Mark, bool) {
	for _, line := range model.Lines {
		m := cells[line[0]]
		if m != model.Empty && m == cells[line[1]] && m == cells[line[2]] {
			return m, true
		}
	}
	return model.Empty, false
}

// WinningLine returns the first complete line, if any
func WinningLine(cells model.Cells) (model.Line, bool) {
	for _, line := range model.Lines {
		m := cells[line[0]]
		if m != model.Empty && m == cells[line[1]] && m == cells[line[2]] {
			return line, true
		}
	}
	return model.Line{}, false
}

// Tie returns true when every cell is filled and nobody has won
func Tie(cells model.Cells) bool {
	if !cells.IsFull() {
		return false
	}
	_, won := Winner(cells)
	return !won
}

// Evaluate returns the outcome and, for a win, the winning mark
func Evaluate(cells model.Cells) (Outcome, model.Mark) {
	if m, ok := Winner(cells); ok {
		return Win, m
	}
	if cells.IsFull() {
		return Draw, model.Empty
	}
	return InProgress, model.Empty
}

// IsTerminal returns true if the game on this board is over
func IsTerminal(cells model.Cells) bool {
	outcome, _ := Evaluate(cells)
	return outcome != InProgress
}
