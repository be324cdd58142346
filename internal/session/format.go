package session

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const ruleWidth = 80

// FormatScreen lays out a screen for a failure message: a titled rule,
// then every line numbered and padded to width so trailing spaces and the
// right edge are visible.
func FormatScreen(title, screen string, width int) string {
	rule := strings.Repeat("=", ruleWidth)
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n%s:\n%s\n", rule, title, rule)
	for i, line := range strings.Split(screen, "\n") {
		pad := max(0, width-runewidth.StringWidth(line))
		fmt.Fprintf(&b, "%3d | %s%s|\n", i, line, strings.Repeat(" ", pad))
	}
	b.WriteString(rule)
	return b.String()
}
