package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Pick a game, then a difficulty. After a game ends, Esc returns to the
menu to play again. Tab opens the scoreboard.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Esc/B        - Back
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --user ana --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	svc := openServices(false)
	err := tui.RunApp(tui.AppOptions{
		Config:     runtimeConfig(),
		UserID:     flagUser,
		Scores:     svc.scoreSource(),
		HighScores: svc.highScores,
		Reporter:   svc.reporter,
		Catalog:    svc.catalog,
		Logger:     svc.logger,
	})
	svc.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
