package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ptyprobe",
	Short: "Drive terminal programs through a PTY and read their screen",
	Long: `ptyprobe runs an interactive program inside a pseudo-terminal, types into it,
and prints what its screen looks like.

Quick start:
  ptyprobe run -- htop                          # Print htop's first screen
  ptyprobe run --keys 'ihello<Esc>' -- vi       # Type, then print the screen
  ptyprobe run --wait 'ready' --json -- ./app   # Wait for a pattern, emit JSON
  ptyprobe render session.raw                   # Replay recorded output
  ptyprobe strip < session.raw                  # Remove escape sequences`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(stripCmd)
	rootCmd.AddCommand(regionCmd)
	rootCmd.AddCommand(versionCmd)
}
