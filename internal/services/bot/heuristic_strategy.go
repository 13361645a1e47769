package bot

import (
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
)

// selector proposes a move or declines
type selector func(cells model.Cells, aiMark, humanMark model.Mark) (int, bool)

// HeuristicStrategy tries a fixed list of rules and plays the first one
// that proposes a move: win, block, center, a random corner, then any
// random cell.
type HeuristicStrategy struct {
	random    random.Random
	selectors []selector
}

// NewHeuristicStrategy creates a new HeuristicStrategy
func NewHeuristicStrategy(rnd random.Random) *HeuristicStrategy {
	s := &HeuristicStrategy{random: rnd}
	s.selectors = []selector{
		winningMove,
		blockingMove,
		centerMove,
		s.cornerMove,
		s.anyMove,
	}
	return s
}

// ChooseMove returns the first move any selector proposes
func (s *HeuristicStrategy) ChooseMove(cells model.Cells, aiMark, humanMark model.Mark) (int, bool) {
	for _, sel := range s.selectors {
		if idx, ok := sel(cells, aiMark, humanMark); ok {
			return idx, true
		}
	}
	return 0, false
}

func winningMove(cells model.Cells, aiMark, _ model.Mark) (int, bool) {
	return completingMove(cells, aiMark)
}

func blockingMove(cells model.Cells, _, humanMark model.Mark) (int, bool) {
	return completingMove(cells, humanMark)
}

func centerMove(cells model.Cells, _, _ model.Mark) (int, bool) {
	if cells[model.Center] == model.Empty {
		return model.Center, true
	}
	return 0, false
}

func (s *HeuristicStrategy) cornerMove(cells model.Cells, _, _ model.Mark) (int, bool) {
	open := make([]int, 0, len(model.Corners))
	for _, i := range model.Corners {
		if cells[i] == model.Empty {
			open = append(open, i)
		}
	}
	return random.Pick(s.random, open)
}

func (s *HeuristicStrategy) anyMove(cells model.Cells, _, _ model.Mark) (int, bool) {
	return random.Pick(s.random, cells.EmptyIndices())
}

// completingMove finds the first line holding two of mark and one empty
// cell, and returns that empty cell
func completingMove(cells model.Cells, mark model.Mark) (int, bool) {
	for _, line := range model.Lines {
		count, empty := 0, -1
		for _, i := range line {
			switch cells[i] {
			case mark:
				count++
			case model.Empty:
				if empty < 0 {
					empty = i
				}
			}
		}
		if count == 2 && empty >= 0 {
			return empty, true
		}
	}
	return 0, false
}
