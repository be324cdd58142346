// Package vterm is the full-emulator screen backend. It scrolls, tracks
// attributes and answers terminal queries, which the grid decoder does not.
package vterm

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/x/vt"
)

const replyBufferSize = 256

// Screen wraps a charmbracelet VT emulator behind the same Write, Render,
// Cursor and Version surface as the grid decoder.
type Screen struct {
	emu     *vt.SafeEmulator
	version atomic.Uint64

	replies   io.Writer
	done      chan struct{}
	closeOnce sync.Once
}

// New returns a cols x rows screen. Replies the emulator generates for
// queries in its input (DA1, cursor reports) are written to replies, which
// is normally the PTY master. A nil replies discards them.
func New(cols, rows int, replies io.Writer) *Screen {
	if replies == nil {
		replies = io.Discard
	}
	s := &Screen{
		emu:     vt.NewSafeEmulator(cols, rows),
		replies: replies,
		done:    make(chan struct{}),
	}
	go s.forwardReplies()
	return s
}

// forwardReplies keeps the emulator's reply pipe drained; an unread reply
// blocks the next Write. Failed writes to replies are dropped.
func (s *Screen) forwardReplies() {
	defer close(s.done)
	buf := make([]byte, replyBufferSize)
	for {
		n, err := s.emu.Read(buf)
		if n > 0 {
			s.replies.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func (s *Screen) Write(p []byte) (int, error) {
	n, err := s.emu.Write(p)
	if n > 0 {
		s.version.Add(1)
	}
	return n, err
}

// Render returns the plain screen text in the grid decoder's format: rows
// without trailing spaces and no trailing blank rows.
func (s *Screen) Render() string {
	return trimRows(normalizeNewlines(s.emu.String()))
}

// Styled returns the screen with SGR attributes kept.
func (s *Screen) Styled() string {
	return normalizeNewlines(s.emu.Render())
}

// Cursor returns the zero-based cursor position.
func (s *Screen) Cursor() (row, col int) {
	pos := s.emu.CursorPosition()
	return pos.Y, pos.X
}

func (s *Screen) Resize(cols, rows int) {
	s.emu.Resize(cols, rows)
}

func (s *Screen) Version() uint64 {
	return s.version.Load()
}

// Close stops reply forwarding and releases the emulator. emu.Close must not
// run while emu.Read is in flight, so the reader is ended first by closing
// the emulator's input pipe.
func (s *Screen) Close() error {
	s.closeOnce.Do(func() {
		if pw, ok := s.emu.InputPipe().(io.Closer); ok {
			pw.Close()
		}
		<-s.done
		s.emu.Close()
	})
	return nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "")
}

func trimRows(s string) string {
	rows := strings.Split(s, "\n")
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], " ")
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return strings.Join(rows, "\n")
}
