package bot

import "github.com/mcoot/tictactoe-go/internal/model"

// Strategy defines how the computer picks its next cell.
// cells is a copy; implementations may scribble on it freely.
type Strategy interface {
	// ChooseMove returns the index to play, or false if the board is full
	ChooseMove(cells model.Cells, aiMark, humanMark model.Mark) (int, bool)
}

var (
	_ Strategy = (*RandomStrategy)(nil)
	_ Strategy = (*HeuristicStrategy)(nil)
	_ Strategy = (*MinimaxStrategy)(nil)
)
