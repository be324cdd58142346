package session

import (
	"regexp"
	"time"

	"github.com/schovi/ptyprobe/internal/ansi"
	"github.com/schovi/ptyprobe/internal/region"
	"github.com/schovi/ptyprobe/internal/wait"
)

// CurrentScreen drains pending output briefly and renders the screen: one
// line per row with trailing spaces removed and trailing blank rows dropped.
func (s *Session) CurrentScreen() string {
	s.Drain(s.opts.screenDrain)
	screen := s.emu.Render()
	s.log.Printf("screen:\n%s", screen)
	return screen
}

// AccumulatedOutput returns all output received so far with escape
// sequences removed. With clear set the buffer is emptied afterwards.
func (s *Session) AccumulatedOutput(clear bool) string {
	s.Drain(s.opts.screenDrain)
	text := ansi.Strip(string(s.output.Bytes()))
	s.log.Printf("accumulated output: %d bytes held, %d dropped", s.output.Len(), s.output.Dropped())
	if clear {
		s.output.Reset()
	}
	return text
}

// CurrentFrame returns the output since the most recent full-screen clear
// with escape sequences removed.
func (s *Session) CurrentFrame() string {
	s.Drain(s.opts.screenDrain)
	return ansi.Strip(string(s.frame.Frame()))
}

// Cursor returns the zero-based cursor position.
func (s *Session) Cursor() (row, col int) {
	return s.emu.Cursor()
}

// Version increases whenever output changes the screen model.
func (s *Session) Version() uint64 {
	return s.emu.Version()
}

// ExtractBorderedRegion returns the interior of a box drawn on the current
// screen. which selects by index, or region.Largest for the tallest box.
func (s *Session) ExtractBorderedRegion(which int) (string, error) {
	return region.Extract(s.CurrentScreen(), which)
}

// WaitFor polls the screen until pattern (a regular expression) matches.
// On timeout the last screen is returned with an error.
func (s *Session) WaitFor(pattern string, timeout time.Duration) (string, error) {
	return wait.ForScreen(s.readScreen, wait.Config{
		Pattern:      pattern,
		Timeout:      timeout,
		PollInterval: s.opts.pollInterval,
	})
}

// WaitForText is WaitFor matching text literally.
func (s *Session) WaitForText(text string, timeout time.Duration) (string, error) {
	return s.WaitFor(regexp.QuoteMeta(text), timeout)
}

// WaitSettle waits until the screen has not changed for settle.
func (s *Session) WaitSettle(settle, timeout time.Duration) (string, error) {
	return wait.ForScreen(s.readScreen, wait.Config{
		Settle:       settle,
		Timeout:      timeout,
		PollInterval: s.opts.pollInterval,
	})
}

func (s *Session) readScreen() (string, uint64, error) {
	if s.closed {
		return "", 0, ErrClosed
	}
	s.Drain(s.opts.screenDrain)
	return s.emu.Render(), s.emu.Version(), nil
}
