package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/score"
	"github.com/vovakirdan/arcade-portal/internal/storage"
	"github.com/vovakirdan/arcade-portal/internal/storage/remote"
)

var (
	flagScoresLimit  int
	flagScoresRemote bool
	flagScoresClear  bool
	flagScoresStats  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top scores for the specified game.

Scores come from the local database, or from the hosted leaderboard with
--remote (requires --remote-dsn or $ARCADE_PG_DSN).

Examples:
  arcade scores flappy
  arcade scores dino --limit 20
  arcade scores breakout --stats
  arcade scores pinpoint --remote
  arcade scores memory --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresRemote, "remote", false, "Read the hosted leaderboard instead of the local database")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the game")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show aggregated statistics for the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	title := game.Title()

	if flagScoresRemote {
		runRemoteScores(gameID, title)
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s\n", title)
		return
	}

	entries, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}
	records := make([]score.Record, len(entries))
	for i, e := range entries {
		records[i] = e.Record
	}
	printScores(gameID, title, records)

	if len(records) > 0 {
		if best, err := store.HighScore(gameID); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d\n", best)
		}
	}

	if flagScoresStats {
		stats, err := store.GetGameStats(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
			return
		}
		printStats(stats)
	}
}

func runRemoteScores(gameID, title string) {
	if flagRemoteDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: --remote needs --remote-dsn or $ARCADE_PG_DSN")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	rs, err := remote.Open(ctx, flagRemoteDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to the hosted leaderboard: %v\n", err)
		os.Exit(1)
	}
	defer rs.Close()

	if flagScoresClear {
		if err := rs.Clear(ctx, gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared hosted scores for %s\n", title)
		return
	}

	records, err := rs.TopScores(ctx, gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}
	printScores(gameID, title, records)

	if best, ok, err := rs.HighScore(ctx, gameID); err == nil && ok {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
}

func printScores(gameID, title string, records []score.Record) {
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-8s  %s\n", "Rank", "Player", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-8s  %s\n", "----", "------", "-----", "----", "----")

	for i, r := range records {
		player := r.UserID
		if player == "" {
			player = "-"
		}
		taken := "-"
		if r.TimeTaken != nil {
			taken = r.TimeTaken.Round(time.Second).String()
		}
		fmt.Printf("  %-4d  %-12s  %-8d  %-8s  %s\n", i+1, player, r.Score, taken, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printStats(s *storage.GameStats) {
	fmt.Println()
	fmt.Println("Statistics:")
	fmt.Printf("  Games played:  %d\n", s.GamesCount)
	fmt.Printf("  Completed:     %d\n", s.Completed)
	fmt.Printf("  Average score: %.1f\n", s.AvgScore)
	fmt.Printf("  Total score:   %d\n", s.TotalScore)
	if !s.LastPlayed.IsZero() {
		fmt.Printf("  Last played:   %s\n", s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
