package cli

import (
	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameClickCmd())
	cmd.AddCommand(newGameResignCmd())
	cmd.AddCommand(newGameKickCmd())
	cmd.AddCommand(newGameLeaveCmd())
	cmd.AddCommand(newGameLeaderboardCmd())
	cmd.AddCommand(newGameTimerCmd())
	cmd.AddCommand(newGameShareCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var startPage, endPage string
	var timeLimit int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new race",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"start_page": startPage,
				"end_page":   endPage,
				"time_limit": timeLimit,
			}
			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&startPage, "start", "", "Start article, e.g. /wiki/Coffee (required)")
	cmd.Flags().StringVar(&endPage, "end", "", "Target article, e.g. /wiki/Volcano (required)")
	cmd.Flags().IntVar(&timeLimit, "time-limit", 300, "Race duration in seconds")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Show a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join a pending game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post("/api/v1/games/"+args[0]+"/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start the race (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post("/api/v1/games/"+args[0]+"/start", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameClickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "click <code> <url>",
		Short: "Report a navigation to an article",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"url": args[1]}
			var result ClickResult

			if err := client.Post("/api/v1/games/"+args[0]+"/click", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resign <code>",
		Short: "Give up on the current race",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post("/api/v1/games/"+args[0]+"/resign", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameKickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kick <code> <player-id>",
		Short: "Kick a player from the game (host only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_id": args[1]}
			var result Game

			if err := client.Post("/api/v1/games/"+args[0]+"/kick", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <code>",
		Short: "Leave a game (hosts delete it for everyone)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/games/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left game " + args[0])
			return nil
		},
	}
}

func newGameLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard <code>",
		Short: "Show ranked finishers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []LeaderboardEntry

			if err := client.Get("/api/v1/games/"+args[0]+"/leaderboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameTimerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timer <code>",
		Short: "Show remaining race time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result TimerResult

			if err := client.Get("/api/v1/games/"+args[0]+"/timer", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <code>",
		Short: "Show the invite link for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ShareResult

			if err := client.Get("/api/v1/games/"+args[0]+"/share", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
