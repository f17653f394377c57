package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EliasCampos/snake-of-time/internal/platform/tui"
	"github.com/EliasCampos/snake-of-time/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Pick the difficulty and the predictable-future mode, play rounds and
browse high scores without leaving the program.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right      - Change setting
  Enter           - Select
  Q               - Quit

Examples:
  snakeoftime menu
  snakeoftime menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runMenu(cmd *cobra.Command, _ []string) {
	cfg, err := loadGameConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sink := openSink(cfg)
	defer closeSink(sink)
	width, height := terminalSize()

	if err := tui.RunSession(store, cfg, sink, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
