package bot

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/rules"
)

// Service routes move requests to the strategy for a difficulty
type Service struct {
	strategies map[model.Difficulty]Strategy
	logger     *slog.Logger
}

// DefaultStrategies returns the standard strategy for each difficulty
func DefaultStrategies(rnd random.Random) map[model.Difficulty]Strategy {
	return map[model.Difficulty]Strategy{
		model.DifficultyEasy:   NewRandomStrategy(rnd),
		model.DifficultyMedium: NewHeuristicStrategy(rnd),
		model.DifficultyHard:   NewMinimaxStrategy(),
	}
}

// NewService creates a new bot Service
func NewService(strategies map[model.Difficulty]Strategy, logger *slog.Logger) *Service {
	return &Service{
		strategies: strategies,
		logger:     logger.With(slog.String("component", "bot-service")),
	}
}

// Supports returns true if a strategy is registered for the difficulty
func (s *Service) Supports(difficulty model.Difficulty) bool {
	_, ok := s.strategies[difficulty]
	return ok
}

// GetMove asks the difficulty's strategy for a move. It returns false when
// the game on the board is already over. An unregistered difficulty panics: callers
// validate difficulty with model.ParseDifficulty before a game starts.
func (s *Service) GetMove(difficulty model.Difficulty, cells model.Cells, aiMark, humanMark model.Mark) (int, bool) {
	strategy, ok := s.strategies[difficulty]
	if !ok {
		panic(fmt.Sprintf("bot: no strategy for difficulty %q", difficulty))
	}
	if rules.IsTerminal(cells) {
		return 0, false
	}

	idx, ok := strategy.ChooseMove(cells, aiMark, humanMark)
	if !ok {
		s.logger.Debug("no move available", slog.String("difficulty", string(difficulty)))
		return 0, false
	}

	s.logger.Debug("bot chose move",
		slog.String("difficulty", string(difficulty)),
		slog.Int("index", idx),
	)
	return idx, true
}
