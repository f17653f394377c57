// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"fmt"
	"time"
)

// GameConfig contains all configuration for one round.
type GameConfig struct {
	Area       AreaConfig       `yaml:"area"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
	// PredictableFuture replays food positions displaced by rewind instead
	// of re-randomizing them.
	PredictableFuture bool        `yaml:"predictable_future"`
	Audio             AudioConfig `yaml:"audio"`
}

// AreaConfig defines the play area in pixels. Zero width/height means "fit
// the terminal": the platform derives the area from the window size.
type AreaConfig struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AudioConfig controls sound output.
type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DifficultyPreset represents a named difficulty level. It maps to the
// simulation tick length: harder means faster.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// FrameTimeForPreset returns the tick length for a difficulty preset.
func FrameTimeForPreset(preset DifficultyPreset) time.Duration {
	switch preset {
	case DifficultyEasy:
		return 80 * time.Millisecond
	case DifficultyHard:
		return 20 * time.Millisecond
	default:
		return 40 * time.Millisecond
	}
}

// Validate rejects configurations that cannot produce a playable round.
func (c GameConfig) Validate() error {
	switch c.Difficulty {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
	default:
		return fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", c.Difficulty)
	}
	if c.Area.Width < 0 || c.Area.Height < 0 {
		return fmt.Errorf("config: area dimensions must not be negative, got %dx%d",
			c.Area.Width, c.Area.Height)
	}
	if c.Area.Left < 0 || c.Area.Top < 0 {
		return fmt.Errorf("config: area origin must not be negative, got (%d, %d)",
			c.Area.Left, c.Area.Top)
	}
	return nil
}
