// Package region extracts box-drawn popups from a rendered screen.
package region

import (
	"errors"
	"strings"
)

const (
	topLeft    = "┌"
	bottomLeft = "└"
	horizontal = "─"
	vertical   = "│"
)

// Largest selects the region spanning the most lines.
const Largest = -1

var ErrNoRegion = errors.New("no region found")

// Bounds locates a region by the line indexes of its top and bottom borders.
type Bounds struct {
	Top    int
	Bottom int
}

// Find returns every bordered region of screen in top-to-bottom order. A
// region opens on a line containing both ┌ and ─ and closes on the next line
// containing both └ and ─. Regions do not overlap; an unclosed top border is
// skipped.
func Find(screen string) []Bounds {
	lines := strings.Split(screen, "\n")
	var found []Bounds
	for i := 0; i < len(lines); i++ {
		if !isBorder(lines[i], topLeft) {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if isBorder(lines[j], bottomLeft) {
				found = append(found, Bounds{Top: i, Bottom: j})
				i = j
				break
			}
		}
	}
	return found
}

func isBorder(line, corner string) bool {
	return strings.Contains(line, corner) && strings.Contains(line, horizontal)
}

// Extract returns the interior text of one region of screen. which is a
// region index or Largest; an index out of range falls back to the first
// region. Each interior line keeps the text between its first and last │;
// lines without two distinct │ are left out. It returns ErrNoRegion when the
// screen has no region.
func Extract(screen string, which int) (string, error) {
	regions := Find(screen)
	if len(regions) == 0 {
		return "", ErrNoRegion
	}

	chosen := regions[0]
	switch {
	case which == Largest:
		for _, r := range regions[1:] {
			if r.Bottom-r.Top > chosen.Bottom-chosen.Top {
				chosen = r
			}
		}
	case which >= 0 && which < len(regions):
		chosen = regions[which]
	}

	lines := strings.Split(screen, "\n")
	interior := make([]string, 0, chosen.Bottom-chosen.Top)
	for _, line := range lines[chosen.Top+1 : chosen.Bottom] {
		first := strings.Index(line, vertical)
		last := strings.LastIndex(line, vertical)
		if first == -1 || first == last {
			continue
		}
		interior = append(interior, line[first+len(vertical):last])
	}
	return strings.Join(interior, "\n"), nil
}
