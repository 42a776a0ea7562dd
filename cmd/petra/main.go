// Package main provides the entry point for the Petra API server and its
// offline tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:          "petra",
	Short:        "Petra pet adoption API",
	Long:         "Petra scores adoption readiness, recommends breeds, writes pet-parent guides and handles the site's lead forms and subscriptions.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML, JSON or TOML config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
