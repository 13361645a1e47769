package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/api/request"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Play against the server",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameMoveCmd())
	cmd.AddCommand(newGameRestartCmd())
	cmd.AddCommand(newGameEndCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	var req request.CreateGameRequest

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := client.CreateGame(cmd.Context(), req)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(game)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.PlayerName, "name", "", "Your name (default \"You\")")
	cmd.Flags().StringVar(&req.Difficulty, "difficulty", "medium", "easy, medium or hard")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := client.ListGames(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(list)
			return nil
		},
	}
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := client.GetGame(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(game)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <index>",
		Short: "Play a cell (0-8, left to right, top to bottom)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index: %w", err)
			}

			game, err := client.Move(cmd.Context(), args[0], index)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(game)
			return nil
		},
	}
}

func newGameRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart <id>",
		Short: "Clear the board and play again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := client.Restart(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(game)
			return nil
		},
	}
}

func newGameEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <id>",
		Short: "End a game and discard it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.EndGame(cmd.Context(), args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Game ended")
			return nil
		},
	}
}

func gamePath(id string) string {
	return "/api/v1/games/" + id
}
