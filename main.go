package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "shoe-catalog",
	Short: "Shoe storefront catalog service",
	// Running without a subcommand serves the storefront.
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a config file (yaml, json or toml)")
	rootCmd.AddCommand(serveCmd, queryCmd, statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
