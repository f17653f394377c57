package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultConfig returns the default game configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Area: AreaConfig{
			Width:  0, // fit terminal
			Height: 0,
		},
		Difficulty:        DifficultyNormal,
		PredictableFuture: false,
		Audio: AudioConfig{
			Enabled: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML, for printing a config
// template to the user.
func DefaultYAML() []byte {
	return defaultGameYAML
}
