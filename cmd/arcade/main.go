// arcade is a terminal arcade portal: a catalog of small real-time and
// puzzle games sharing one game loop, score store and SSH front door.
//
// Usage:
//
//	arcade list               - List available games
//	arcade play <game>        - Play a game
//	arcade menu               - Pick games from the catalog menu
//	arcade serve              - Start the SSH server for remote play
//	arcade scores <game>      - Show high scores for a game
//	arcade replay <file>      - Re-run a recorded game headlessly
//
// Global flags:
//
//	--fps <rate>         - Tick rate (default: 60)
//	--seed <value>       - RNG seed for reproducible games
//	--db <path>          - SQLite database (default: ~/.arcade/scores.db, $ARCADE_DB)
//	--user <name>        - Player name for score records ($ARCADE_USER)
//	--remote-dsn <dsn>   - Postgres leaderboard ($ARCADE_PG_DSN)
//	--log <path>         - Log file (default: ~/.arcade/arcade.log, $ARCADE_LOG)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/config"

	// Games register themselves with the registry.
	_ "github.com/vovakirdan/arcade-portal/internal/games/breakout"
	_ "github.com/vovakirdan/arcade-portal/internal/games/dino"
	_ "github.com/vovakirdan/arcade-portal/internal/games/doodle"
	_ "github.com/vovakirdan/arcade-portal/internal/games/flappy"
	_ "github.com/vovakirdan/arcade-portal/internal/games/memory"
	_ "github.com/vovakirdan/arcade-portal/internal/games/pinpoint"
	_ "github.com/vovakirdan/arcade-portal/internal/games/rps"
	_ "github.com/vovakirdan/arcade-portal/internal/games/tango"
	_ "github.com/vovakirdan/arcade-portal/internal/games/tictactoe"
)

var (
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagUser      string
	flagRemoteDSN string
	flagLogPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade portal - play small games in your terminal",
	Long: `Arcade is a terminal game portal: Breakout, Flappy Bird, Dino Runner,
Doodle Jump, Pinpoint, Memory, Tic-Tac-Toe, Tango and Rock Paper Scissors
behind one menu, with local and hosted leaderboards.

Examples:
  arcade list
  arcade play flappy --difficulty hard
  arcade menu --user ana
  arcade serve --ssh :2222
  arcade scores breakout
  arcade replay run.replay`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaultDB := config.GetEnv(config.EnvDB, filepath.Join("~", ".arcade", "scores.db"))
	defaultLog := config.GetEnv(config.EnvLog, filepath.Join("~", ".arcade", "arcade.log"))

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	flags.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	flags.StringVar(&flagDBPath, "db", defaultDB, "Path to the scores database")
	flags.StringVar(&flagUser, "user", config.GetEnv(config.EnvUser, ""), "Player name for score records (scores are only reported when set)")
	flags.StringVar(&flagRemoteDSN, "remote-dsn", config.GetEnv(config.EnvPGDSN, ""), "Postgres DSN of the hosted leaderboard")
	flags.StringVar(&flagLogPath, "log", defaultLog, "Log file used while the terminal UI runs")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}
