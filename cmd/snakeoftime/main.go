// snakeoftime is a terminal snake game where time itself can be rewound.
//
// Usage:
//
//	snakeoftime play          - Start a round directly
//	snakeoftime menu          - Start with the interactive menu
//	snakeoftime scores        - Show high scores
//	snakeoftime serve         - Start SSH server for remote play
//	snakeoftime config        - Print the default configuration template
//
// Global flags:
//
//	--db <path>     - Set database path (default: ~/.snake-of-time/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagDBPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakeoftime",
	Short: "Snake of Time - snake with a rewindable past",
	Long: `Snake of Time is a terminal snake game with one twist: holding the
rewind key plays the last seconds of the round backwards, segment by
segment, limited by a rewind charge that has to recover after a full
rewind.

Available commands:
  play     - Start a round directly
  menu     - Interactive menu (difficulty, predictable future, scores)
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print the default configuration template

Examples:
  snakeoftime play
  snakeoftime play --difficulty hard --predictable-future
  snakeoftime menu
  snakeoftime serve --ssh :2222
  snakeoftime scores`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake-of-time/scores.db", "Path to scores database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
