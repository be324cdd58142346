package cmd

import (
	"fmt"

	"github.com/schovi/ptyprobe/internal/ansi"
	"github.com/spf13/cobra"
)

var stripCmd = &cobra.Command{
	Use:   "strip [file]",
	Short: "Remove escape sequences from terminal output",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args)
		if err != nil {
			return err
		}
		fmt.Print(ansi.Strip(string(data)))
		return nil
	},
}
