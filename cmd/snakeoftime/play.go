package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/EliasCampos/snake-of-time/internal/audio"
	"github.com/EliasCampos/snake-of-time/internal/config"
	"github.com/EliasCampos/snake-of-time/internal/platform/tui"
	"github.com/EliasCampos/snake-of-time/internal/storage"
)

var (
	flagConfig      string
	flagDifficulty  string
	flagPredictable bool
	flagSeed        int64
	flagMute        bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a round",
	Long: `Start a round directly, skipping the menu.

Controls:
  Arrows/WASD - Steer the snake
  Hold R      - Rewind time (while the charge lasts)
  Enter       - Play again (after game over)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - 80 ms per tick
  normal - 40 ms per tick
  hard   - 20 ms per tick

Examples:
  snakeoftime play
  snakeoftime play --difficulty hard
  snakeoftime play --predictable-future
  snakeoftime play --config ./my-game.yaml --seed 42`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagPredictable, "predictable-future", false, "Replay food displaced by rewinds instead of re-rolling it")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

// loadGameConfig loads the config file and applies command-line overrides.
func loadGameConfig(cmd *cobra.Command) (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		cfg.Difficulty = config.DifficultyPreset(flagDifficulty)
	}
	if cmd.Flags().Changed("predictable-future") {
		cfg.PredictableFuture = flagPredictable
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openSink initializes audio output, falling back to silence.
func openSink(cfg config.GameConfig) audio.Sink {
	if !cfg.Audio.Enabled {
		return audio.Nop{}
	}
	speaker, err := audio.NewSpeaker()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no audio: %v\n", err)
		return audio.Nop{}
	}
	return speaker
}

// closeSink releases the audio output if the sink holds one.
func closeSink(sink audio.Sink) {
	if s, ok := sink.(*audio.Speaker); ok {
		s.Close()
	}
}

// terminalSize probes the terminal, with a sane fallback.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func runPlay(cmd *cobra.Command, _ []string) {
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

	if err := tui.RunGame(store, cfg, sink, width, height, flagSeed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
