package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Enter/Space  - Start, confirm, jump
  Arrows/WASD  - Move
  1-9          - Pick a choice
  ?            - Hint
  P/Esc        - Pause
  R            - Restart (after game over)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play flappy
  arcade play dino --difficulty easy
  arcade play pinpoint --difficulty hard
  arcade play breakout --record run.replay
  arcade play flappy --config ./my-flappy.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record the first run to this replay file")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	factory, err := registry.Lookup(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	cfg := runtimeConfig()
	cfg.ConfigPath = flagConfig
	cfg.Difficulty = flagDifficulty

	svc := openServices(false)
	runErr := tui.Run(tui.GameOptions{
		Factory:    factory,
		Config:     cfg,
		UserID:     flagUser,
		HighScores: svc.highScores,
		Reporter:   svc.reporter,
		Logger:     svc.logger,
		RecordPath: flagRecord,
	})

	// Close waits for the final score to be saved.
	svc.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if flagRecord != "" {
		fmt.Printf("Replay written to %s\n", flagRecord)
	}
}
