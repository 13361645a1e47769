package bot

import (
	"math"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/rules"
)

const (
	winScore  = 10
	lossScore = -10
)

// MinimaxStrategy searches the full game tree and never loses.
// Quicker wins and slower losses score better. Among equal scores the
// lowest index is played.
type MinimaxStrategy struct{}

// NewMinimaxStrategy creates a new MinimaxStrategy
func NewMinimaxStrategy() *MinimaxStrategy {
	return &MinimaxStrategy{}
}

// ChooseMove returns the best-scoring empty cell
func (s *MinimaxStrategy) ChooseMove(cells model.Cells, aiMark, humanMark model.Mark) (int, bool) {
	best, bestScore := -1, math.MinInt
	for i := range cells {
		if cells[i] != model.Empty {
			continue
		}
		next := cells
		next[i] = aiMark
		score := minimax(next, 0, false, aiMark, humanMark)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// minimax scores cells from the AI's point of view. cells is a value,
// so each call works on its own copy.
func minimax(cells model.Cells, depth int, maximizing bool, aiMark, humanMark model.Mark) int {
	switch outcome, winner := rules.Evaluate(cells); outcome {
	case rules.Win:
		if winner == aiMark {
			return winScore - depth
		}
		return lossScore + depth
	case rules.Draw:
		return 0
	}

	if maximizing {
		best := math.MinInt
		for i := range cells {
			if cells[i] != model.Empty {
				continue
			}
			next := cells
			next[i] = aiMark
			best = max(best, minimax(next, depth+1, false, aiMark, humanMark))
		}
		return best
	}

	best := math.MaxInt
	for i := range cells {
		if cells[i] != model.Empty {
			continue
		}
		next := cells
		next[i] = humanMark
		best = min(best, minimax(next, depth+1, true, aiMark, humanMark))
	}
	return best
}
