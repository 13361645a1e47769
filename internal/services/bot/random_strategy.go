package bot

import (
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// RandomStrategy picks uniformly among the empty cells
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseMove picks a random empty cell
func (s *RandomStrategy) ChooseMove(cells model.Cells, _, _ model.Mark) (int, bool) {
	return random.Pick(s.random, cells.EmptyIndices())
}
