// Command locbase captures and lists positions from the terminal, sharing
// storage and configuration with the API server.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:           "locbase",
	Short:         "Capture and list device positions",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./configs", "directory containing app.env")
	rootCmd.AddCommand(captureCmd, listCmd, darkModeCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
