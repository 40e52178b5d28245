package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "scriptplay",
	Short: "Synchronized transcript player for the terminal",
	Long: `Scriptplay plays a timed-transcript document alongside its audio file,
keeping the active segment highlighted as playback advances. Hand it a
transcript (.json), an audio file (.mp3), or both; either may be missing
and the player degrades accordingly.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(inspectCmd)
}
