// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moviestream/tamilblasters-indexer/consts"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:     "tamilblasters-indexer",
	Short:   "Scrape and index movie metadata from the TamilBlasters forum",
	Version: consts.Version(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a TOML config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
