package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EliasCampos/snake-of-time/internal/platform/tui"
	"github.com/EliasCampos/snake-of-time/internal/storage"
)

var (
	flagScoresLimit       int
	flagScoresClear       bool
	flagScoresInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top recorded rounds and overall statistics.

Examples:
  snakeoftime scores
  snakeoftime scores --limit 25
  snakeoftime scores --interactive
  snakeoftime scores --clear`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded rounds")
	scoresCmd.Flags().BoolVar(&flagScoresInteractive, "interactive", false, "Browse scores in a scrollable table")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All scores cleared.")
		return
	}

	if flagScoresInteractive {
		width, height := terminalSize()
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scores, err := store.TopScores(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Snake of Time")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snakeoftime play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-10s  %-11s  %s\n", "Rank", "Score", "Difficulty", "Future", "Date")
	fmt.Printf("  %-4s  %-6s  %-10s  %-11s  %s\n", "----", "-----", "----------", "------", "----")

	for i, entry := range scores {
		future := "random"
		if entry.Predictable {
			future = "predictable"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-10s  %-11s  %s\n", i+1, entry.Score, entry.Difficulty, future, dateStr)
	}

	stats, err := store.GetStats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Rounds played: %d   Best: %d   Average: %.1f\n",
			stats.RoundsCount, stats.HighScore, stats.AvgScore)
	}
}
