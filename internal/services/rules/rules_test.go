package rules_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/rules"
)

const (
	e = model.Empty
	x = model.X
	o = model.O
)

type RulesSuite struct {
	suite.Suite
}

func TestRulesSuite(t *testing.T) {
	suite.Run(t, new(RulesSuite))
}

func (s *RulesSuite) TestEmptyBoardHasNoWinner() {
	_, ok := rules.Winner(model.Cells{})
	s.False(ok)
	s.False(rules.Tie(model.Cells{}))
	s.False(rules.IsTerminal(model.Cells{}))
}

func (s *RulesSuite) TestEveryLineWins() {
	for _, line := range model.Lines {
		var cells model.Cells
		for _, i := range line {
			cells[i] = o
		}
		m, ok := rules.Winner(cells)
		s.True(ok, "line %v", line)
		s.Equal(o, m)

		got, ok := rules.WinningLine(cells)
		s.True(ok)
		s.Equal(line, got)
	}
}

func (s *RulesSuite) TestFirstMatchingLineWins() {
	// Both row 2 and column 0 are complete; row 2 is scanned first.
	cells := model.Cells{
		x, o, o,
		x, o, e,
		x, x, x,
	}
	line, ok := rules.WinningLine(cells)
	s.True(ok)
	s.Equal(model.Line{6, 7, 8}, line)
}

func (s *RulesSuite) TestFullBoardWithoutWinnerIsTie() {
	cells := model.Cells{
		x, o, x,
		x, o, o,
		o, x, x,
	}
	_, ok := rules.Winner(cells)
	s.False(ok)
	s.True(rules.Tie(cells))

	outcome, m := rules.Evaluate(cells)
	s.Equal(rules.Draw, outcome)
	s.Equal(model.Empty, m)
}

func (s *RulesSuite) TestDrawIsTerminal() {
	cells := model.Cells{
		o, x, o,
		o, x, x,
		x, o, x,
	}
	outcome, _ := rules.Evaluate(cells)
	s.Equal(rules.Draw, outcome)
	s.NotEqual(rules.Win, outcome)
	s.True(rules.IsTerminal(cells))
	_, ok := rules.WinningLine(cells)
	s.False(ok)
}

func (s *RulesSuite) TestFullBoardWithWinnerIsNotTie() {
	cells := model.Cells{
		x, x, x,
		o, o, x,
		x, o, o,
	}
	s.False(rules.Tie(cells))

	outcome, m := rules.Evaluate(cells)
	s.Equal(rules.Win, outcome)
	s.Equal(x, m)
	s.True(rules.IsTerminal(cells))
}

func (s *RulesSuite) TestPartialBoardInProgress() {
	cells := model.Cells{
		x, o, e,
		e, x, e,
		e, e, o,
	}
	outcome, _ := rules.Evaluate(cells)
	s.Equal(rules.InProgress, outcome)
}
