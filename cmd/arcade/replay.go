package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/loop"
	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/replay"
)

var flagReplayShow bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-run a recorded game",
	Long: `Replay a file written by 'arcade play --record' through the game loop
without a terminal UI, then print the final state. The run fails when the
result differs from the recorded one.

Examples:
  arcade replay run.replay
  arcade replay run.replay --show`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayShow, "show", false, "Print the last frame")
}

func runReplay(_ *cobra.Command, args []string) {
	r, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	factory, err := registry.Lookup(r.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: replay is for unknown game %q\n", r.GameID)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "replay", Level: log.WarnLevel})

	// The driver reuses one screen, so the last presented frame is the final one.
	var last *core.Screen
	res, err := replay.Play(r, factory, logger, loop.WithPresenter(loop.PresenterFunc(func(frame *core.Screen, _ core.StepResult) {
		last = frame
	})))

	if flagReplayShow && last != nil {
		fmt.Println(tui.RenderScreen(last))
	}
	fmt.Printf("Game:   %s\n", r.GameID)
	fmt.Printf("Ticks:  %d\n", r.Ticks)
	fmt.Printf("Phase:  %s\n", res.State.Phase)
	fmt.Printf("Score:  %d\n", res.State.Score)
	fmt.Printf("Level:  %d\n", res.State.Level)

	if err != nil {
		if errors.Is(err, replay.ErrDiverged) {
			fmt.Fprintln(os.Stderr, "Replay diverged from the recording.")
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Replay matches the recording.")
}
