package game

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/services/rules"
)

// DefaultThinkDelay is the pause before the computer moves
const DefaultThinkDelay = 200 * time.Millisecond

// Presenter draws the game. Methods are called with the controller's
// lock held and must not call back into the controller.
type Presenter interface {
	Render(board model.Cells, locked bool)
	SetStatus(text string)
}

// Options tunes a Controller
type Options struct {
	// ThinkDelay is how long the computer "thinks" before moving
	ThinkDelay time.Duration

	// Observer, if set, receives a snapshot after every state change,
	// including computer moves. Same locking rules as Presenter.
	Observer func(state model.GameState)
}

// DefaultOptions returns Options with the standard think delay
func DefaultOptions() Options {
	return Options{ThinkDelay: DefaultThinkDelay}
}

// Controller runs one human-vs-computer game: turn order, input locking,
// the delayed computer move, and end-of-game detection.
type Controller struct {
	mu sync.Mutex

	board     *model.Board
	bots      *bot.Service
	presenter Presenter
	clock     clock.Clock
	opts      Options
	logger    *slog.Logger

	human      model.Player
	computer   model.Player
	difficulty model.Difficulty
	turn       model.Turn
	started    bool
	running    bool
	locked     bool
	status     string
	winner     model.Mark
	tie        bool
	updatedAt  time.Time

	// generation is bumped on every start, restart and close. A scheduled
	// computer move only applies if the generation it captured is current.
	generation uint64
	pending    clock.Timer
}

// NewController creates an idle Controller
func NewController(
	bots *bot.Service,
	presenter Presenter,
	clk clock.Clock,
	opts Options,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		board:      model.NewBoard(),
		bots:       bots,
		presenter:  presenter,
		clock:      clk,
		opts:       opts,
		logger:     logger.With(slog.String("component", "game-controller")),
		human:      model.NewHumanPlayer(""),
		computer:   model.NewComputerPlayer(),
		difficulty: model.DefaultDifficulty,
		turn:       model.TurnHuman,
		locked:     true,
		status:     model.StatusIdle,
		updatedAt:  clk.Now(),
	}
}

// Start begins a new game, abandoning any game in progress.
// An unsupported difficulty panics.
func (c *Controller) Start(name string, difficulty model.Difficulty) {
	if !c.bots.Supports(difficulty) {
		panic(fmt.Sprintf("game: unsupported difficulty %q", difficulty))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.human = model.NewHumanPlayer(name)
	c.difficulty = difficulty
	c.beginLocked()

	c.logger.Info("game started",
		slog.String("player", c.human.Name),
		slog.String("difficulty", string(difficulty)),
		slog.Uint64("generation", c.generation),
	)
}

// Restart clears the board and starts over with the current settings.
// Before any game has started it starts one with the defaults.
func (c *Controller) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	wasRunning := c.running
	c.beginLocked()

	c.logger.Info("game restarted",
		slog.Bool("was_running", wasRunning),
		slog.Uint64("generation", c.generation),
	)
}

// HumanMove plays the human's mark at index. It reports whether the move
// was applied; moves out of turn, while locked, out of range, or onto an
// occupied cell are ignored.
func (c *Controller) HumanMove(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.locked || c.turn != model.TurnHuman {
		return false
	}
	if !model.IsValidIndex(index) {
		c.logger.Debug("ignoring out of range move", slog.Int("index", index))
		return false
	}
	if !c.board.Set(index, c.human.Mark) {
		return false
	}

	c.renderLocked()
	if c.checkEndLocked() {
		c.notifyLocked()
		return true
	}

	c.turn = model.TurnBot
	c.locked = true
	c.setStatusLocked(model.StatusBotTurn)
	c.renderLocked()
	c.scheduleBotMoveLocked()
	c.notifyLocked()
	return true
}

// Show re-sends the current status and board to the presenter
func (c *Controller) Show() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.presenter.SetStatus(c.status)
	c.renderLocked()
}

// State returns a snapshot of the game
func (c *Controller) State() model.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Close abandons the game and cancels any scheduled computer move
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelPendingLocked()
	c.generation++
	c.running = false
	c.locked = true
}

func (c *Controller) beginLocked() {
	c.cancelPendingLocked()
	c.generation++
	c.board.Reset()
	c.started = true
	c.running = true
	c.locked = false
	c.turn = model.TurnHuman
	c.winner = model.Empty
	c.tie = false

	c.setStatusLocked(c.humanTurnStatus())
	c.renderLocked()
	c.notifyLocked()
}

func (c *Controller) scheduleBotMoveLocked() {
	gen := c.generation
	c.pending = c.clock.AfterFunc(c.opts.ThinkDelay, func() {
		c.botMove(gen)
	})
}

func (c *Controller) cancelPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) botMove(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || gen != c.generation {
		c.logger.Debug("discarding stale bot move",
			slog.Uint64("scheduled_generation", gen),
			slog.Uint64("generation", c.generation),
		)
		return
	}
	c.pending = nil

	if idx, ok := c.bots.GetMove(c.difficulty, c.board.Get(), c.computer.Mark, c.human.Mark); ok {
		if !c.board.Set(idx, c.computer.Mark) {
			c.logger.Warn("bot chose an occupied cell", slog.Int("index", idx))
		}
	}

	c.locked = false
	c.renderLocked()
	if !c.checkEndLocked() {
		c.turn = model.TurnHuman
		c.setStatusLocked(c.humanTurnStatus())
	}
	c.notifyLocked()
}

// checkEndLocked finishes the game if the board is won or full
func (c *Controller) checkEndLocked() bool {
	outcome, winner := rules.Evaluate(c.board.Get())
	switch outcome {
	case rules.Win:
		c.winner = winner
		if winner == c.human.Mark {
			c.endLocked(fmt.Sprintf("%s wins!", c.human.Name))
		} else {
			c.endLocked(model.StatusBotWins)
		}
	case rules.Draw:
		c.tie = true
		c.endLocked(model.StatusTie)
	default:
		return false
	}
	return true
}

func (c *Controller) endLocked(message string) {
	c.running = false
	c.locked = true
	c.setStatusLocked(message)
	c.renderLocked()

	c.logger.Info("game over",
		slog.String("result", message),
		slog.String("difficulty", string(c.difficulty)),
	)
}

func (c *Controller) humanTurnStatus() string {
	return fmt.Sprintf("%s's turn", c.human.Name)
}

func (c *Controller) setStatusLocked(text string) {
	c.status = text
	c.presenter.SetStatus(text)
}

func (c *Controller) renderLocked() {
	c.presenter.Render(c.board.Get(), c.locked || !c.running)
}

func (c *Controller) notifyLocked() {
	c.updatedAt = c.clock.Now()
	if c.opts.Observer != nil {
		c.opts.Observer(c.stateLocked())
	}
}

func (c *Controller) stateLocked() model.GameState {
	return model.GameState{
		Board:      c.board.Get(),
		Human:      c.human,
		Computer:   c.computer,
		Difficulty: c.difficulty,
		Turn:       c.turn,
		Running:    c.running,
		Locked:     c.locked || !c.running,
		Phase:      c.phaseLocked(),
		Status:     c.status,
		Winner:     c.winner,
		Tie:        c.tie,
		Generation: c.generation,
		UpdatedAt:  c.updatedAt,
	}
}

func (c *Controller) phaseLocked() model.Phase {
	switch {
	case !c.started:
		return model.PhaseIdle
	case !c.running:
		return model.PhaseTerminal
	case c.turn == model.TurnBot:
		return model.PhaseBotThinking
	default:
		return model.PhaseHumanTurn
	}
}
