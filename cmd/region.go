package cmd

import (
	"fmt"
	"strings"

	"github.com/schovi/ptyprobe/internal/region"
	"github.com/spf13/cobra"
)

var regionCmd = &cobra.Command{
	Use:   "region [file]",
	Short: "Print the inside of a box drawn on a rendered screen",
	Long: `Find boxes drawn with ┌ ┐ │ └ ┘ on a plain-text screen (for example the
output of render or run) and print the interior of one of them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRegion,
}

var (
	regionWhichFlag string
	regionListFlag  bool
)

func init() {
	regionCmd.Flags().StringVar(&regionWhichFlag, "which", "largest", "Region to print: largest or a zero-based index")
	regionCmd.Flags().BoolVar(&regionListFlag, "list", false, "List region line ranges instead")
}

func runRegion(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	screen := strings.TrimRight(string(data), "\n")

	if regionListFlag {
		for i, b := range region.Find(screen) {
			fmt.Printf("%d\t%d-%d\n", i, b.Top, b.Bottom)
		}
		return nil
	}

	which, err := parseRegionSelector(regionWhichFlag)
	if err != nil {
		return err
	}
	content, err := region.Extract(screen, which)
	if err != nil {
		return err
	}
	fmt.Println(content)
	return nil
}
