package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-go/internal/dependencies/random"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/services/bot"
	"github.com/mcoot/tictactoe-go/internal/services/game"
)

const (
	playHelp     = "Enter a cell 0-8, r to restart or q to quit."
	playGameOver = "Game over. Press r to play again or q to quit."
	playTaken    = "That cell is taken."
)

type playOptions struct {
	name       string
	difficulty string
	thinkDelay time.Duration
}

func newPlayCmd() *cobra.Command {
	opts := playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Long: `Play tic-tac-toe against the computer without a server.

You are X and move first. Cells are numbered 0-8, left to right and top to
bottom. Type r to restart or q to quit.`,
		Args: cobra.NoArgs,
		// play runs locally and does not need the API client
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			difficulty, err := model.ParseDifficulty(opts.difficulty)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
			if cfg.Verbose {
				logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}
			bots := bot.NewService(bot.DefaultStrategies(random.New()), logger)

			return runPlay(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), bots, clock.New(), opts.name, difficulty, opts.thinkDelay, logger)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "Your name (default \"You\")")
	cmd.Flags().StringVar(&opts.difficulty, "difficulty", string(model.DefaultDifficulty), "easy, medium or hard")
	cmd.Flags().DurationVar(&opts.thinkDelay, "think-delay", game.DefaultThinkDelay, "Pause before the computer moves")

	return cmd
}

// runPlay runs one terminal game until q, the end of input or ctx is done
func runPlay(
	ctx context.Context,
	in io.Reader,
	out io.Writer,
	bots *bot.Service,
	clk clock.Clock,
	name string,
	difficulty model.Difficulty,
	thinkDelay time.Duration,
	logger *slog.Logger,
) error {
	w := &syncWriter{w: out}
	presenter := &terminalPresenter{w: w}

	// Receives a snapshot whenever the human may act again
	settled := make(chan struct{}, 1)
	opts := game.Options{
		ThinkDelay: thinkDelay,
		Observer: func(state model.GameState) {
			if state.Phase != model.PhaseBotThinking {
				select {
				case settled <- struct{}{}:
				default:
				}
			}
		},
	}
	controller := game.NewController(bots, presenter, clk, opts, logger)
	defer controller.Close()

	w.Println(playHelp)
	controller.Start(name, difficulty)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, readErr := readLines(ctx, in)

	for {
		var input string
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			input = strings.ToLower(strings.TrimSpace(line))
		}

		switch input {
		case "":
			continue
		case "q", "quit":
			return nil
		case "r", "restart":
			controller.Restart()
			continue
		}

		index, err := strconv.Atoi(input)
		if err != nil || !model.IsValidIndex(index) {
			w.Println(playHelp)
			continue
		}

		before := controller.State()
		if !before.AcceptsHumanMove() {
			w.Println(playGameOver)
			continue
		}

		drain(settled)
		if !controller.HumanMove(index) {
			w.Println(playTaken)
			continue
		}

		state := controller.State()
		if state.Phase == model.PhaseBotThinking {
			select {
			case <-settled:
			case <-ctx.Done():
				return nil
			}
			state = controller.State()
		}
		if state.IsOver() {
			w.Println(playGameOver)
		}
	}
}

// readLines scans in on its own goroutine so a blocked read never holds up
// cancellation. The error channel gets exactly one value before lines is
// closed. A goroutine stuck in Read stays there until in is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func drain(ch chan struct{}) {
	select {
	case <-ch:
	default:
	}
}

// terminalPresenter draws the game as text. Repeat renders of an unchanged
// board are skipped since the terminal has no disabled state to show.
type terminalPresenter struct {
	w    *syncWriter
	last *model.Cells
}

var _ game.Presenter = (*terminalPresenter)(nil)

func (p *terminalPresenter) Render(cells model.Cells, locked bool) {
	if p.last != nil && *p.last == cells {
		return
	}
	p.last = &cells
	p.w.Print("\n" + FormatBoard(cells) + "\n")
}

func (p *terminalPresenter) SetStatus(text string) {
	p.w.Println(text)
}

// syncWriter serializes writes from the input loop and the computer's timer
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Print(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.w, text)
}

func (s *syncWriter) Println(text string) {
	s.Print(text + "\n")
}
