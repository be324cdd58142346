package session

import (
	"strings"
	"testing"

	"github.com/schovi/ptyprobe/internal/region"
)

// AssertVisible fails t unless text appears on the current screen.
func (s *Session) AssertVisible(t testing.TB, text string) {
	t.Helper()
	screen := s.CurrentScreen()
	if !strings.Contains(screen, text) {
		t.Fatalf("expected %q on screen%s", text, FormatScreen("Current screen", screen, s.cols))
	}
}

// AssertNotVisible fails t if text appears on the current screen.
func (s *Session) AssertNotVisible(t testing.TB, text string) {
	t.Helper()
	screen := s.CurrentScreen()
	if strings.Contains(screen, text) {
		t.Fatalf("did not expect %q on screen%s", text, FormatScreen("Current screen", screen, s.cols))
	}
}

// AssertRegion fails t unless the selected bordered region contains text.
func (s *Session) AssertRegion(t testing.TB, which int, text string) {
	t.Helper()
	screen := s.CurrentScreen()
	content, err := region.Extract(screen, which)
	if err != nil {
		t.Fatalf("no bordered region: %v%s", err, FormatScreen("Current screen", screen, s.cols))
		return
	}
	if !strings.Contains(content, text) {
		t.Fatalf("expected %q in region%s", text, FormatScreen("Region", content, s.cols))
	}
}
