// Package cmd provides the command-line interface for wakesim.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "wakesim",
	Short: "Wakesim runs the vessel and wake simulation engine headlessly " +
		"for inspection and tuning.",
	Long: `Wakesim runs the vessel and wake simulation engine headlessly. ` +
		`It can record a run into a SQLite database and expose a ` +
		`monitoring server while the simulation is in flight.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// A missing .env file is fine; flags cover everything.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
