package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/EliasCampos/snake-of-time/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration template",
	Long: `Print the default configuration in YAML format.

Redirect it to a file to customize:
  snakeoftime config > ~/.snake-of-time/config.yaml`,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.DefaultYAML())
	},
}
