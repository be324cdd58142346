// Package session drives an interactive program through a pseudo-terminal:
// it launches the program, types into it, and keeps a model of its screen
// that tests can query.
package session

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/exec"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"

	"github.com/schovi/ptyprobe/internal/ansi"
	"github.com/schovi/ptyprobe/internal/escape"
	"github.com/schovi/ptyprobe/internal/vterm"
)

// Session is one running program attached to a pseudo-terminal. A Session
// is driven from a single goroutine.
type Session struct {
	cmd  *exec.Cmd
	ptmx *os.File
	fd   int
	opts options
	log  *log.Logger

	cols int
	rows int

	emu        Emulator
	output     *outputBuffer
	frame      *ansi.FrameTracker
	responder  *ansi.TerminalResponder
	transcript *transcript
	readBuf    []byte

	done     chan struct{}
	exitCode int
	closed   bool
}

// Start launches command in a new terminal. command is resolved through
// PATH unless it contains a slash.
func Start(command string, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, &LaunchError{Command: command, Err: err}
	}
	return launch(path, o)
}

// LookupExecutable returns the path of the first candidate found in PATH.
func LookupExecutable(candidates ...string) (string, error) {
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", &LaunchError{
		Command: fmt.Sprint(candidates),
		Err:     fmt.Errorf("none of %v found in PATH: %w", candidates, exec.ErrNotFound),
	}
}

func launch(path string, o options) (*Session, error) {
	if err := checkSize(o.cols, o.rows); err != nil {
		return nil, err
	}
	if err := checkEmulator(o.emulator); err != nil {
		return nil, err
	}

	var tr *transcript
	if o.transcriptPath != "" {
		var err error
		if tr, err = openTranscript(o.transcriptPath); err != nil {
			return nil, err
		}
	}

	cmd := exec.Command(path, o.args...)
	cmd.Dir = o.dir
	cmd.Env = buildEnv(o)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(o.rows), Cols: uint16(o.cols)})
	if err != nil {
		if tr != nil {
			tr.Close()
		}
		return nil, &LaunchError{Command: path, Err: err}
	}

	var replies io.Writer = io.Discard
	if o.respond {
		replies = ptmx
	}
	emu, err := NewEmulator(o.emulator, o.cols, o.rows, replies)
	if err != nil {
		ptmx.Close()
		return nil, err
	}

	s := &Session{
		cmd:        cmd,
		ptmx:       ptmx,
		fd:         int(ptmx.Fd()),
		opts:       o,
		log:        o.logger,
		cols:       o.cols,
		rows:       o.rows,
		emu:        emu,
		output:     newOutputBuffer(o.maxOutputSize),
		frame:      ansi.NewFrameTracker(o.maxOutputSize),
		transcript: tr,
		readBuf:    make([]byte, ReadBufferSize),
		done:       make(chan struct{}),
		exitCode:   -1,
	}
	s.attachResponder()
	go s.reap()

	s.log.Printf("started %s %v pid=%d size=%dx%d emulator=%s", path, o.args, cmd.Process.Pid, o.cols, o.rows, o.emulator)

	time.Sleep(o.startupDelay)
	s.Drain(o.startupDrain)
	return s, nil
}

// checkSize rejects dimensions the terminal cannot represent.
func checkSize(cols, rows int) error {
	if cols < 1 || rows < 1 || cols > math.MaxUint16 || rows > math.MaxUint16 {
		return fmt.Errorf("invalid size %dx%d (each side must be 1-%d)", cols, rows, math.MaxUint16)
	}
	return nil
}

func buildEnv(o options) []string {
	env := append(os.Environ(),
		"LINES="+strconv.Itoa(o.rows),
		"COLUMNS="+strconv.Itoa(o.cols),
		"TERM="+DefaultTerm,
	)
	return append(env, o.env...)
}

// attachResponder answers queries for the grid model. The vt emulator
// answers its own through the replies writer.
func (s *Session) attachResponder() {
	if _, ok := s.emu.(*vterm.Screen); ok || !s.opts.respond {
		return
	}
	s.responder = ansi.NewTerminalResponder(s.ptmx, s.Cursor, s.cols, s.rows)
}

func (s *Session) reap() {
	err := s.cmd.Wait()
	if s.cmd.ProcessState != nil {
		s.exitCode = s.cmd.ProcessState.ExitCode()
	}
	s.log.Printf("pid=%d exited code=%d err=%v", s.cmd.Process.Pid, s.exitCode, err)
	close(s.done)
}

// Pid returns the program's process id.
func (s *Session) Pid() int {
	return s.cmd.Process.Pid
}

// Size returns the terminal dimensions.
func (s *Session) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Exited is closed once the program has terminated.
func (s *Session) Exited() <-chan struct{} {
	return s.done
}

// ExitCode returns the program's exit status, or -1 while it is running or
// when it was killed by a signal.
func (s *Session) ExitCode() int {
	select {
	case <-s.done:
		return s.exitCode
	default:
		return -1
	}
}

// SendText types text one character at a time using the configured key
// delay, then waits briefly and drains output. A newline is sent as Enter;
// every other byte goes out unchanged, including invalid UTF-8.
func (s *Session) SendText(text string) error {
	return s.SendTextWithDelay(text, s.opts.keyDelay)
}

// SendTextWithDelay is SendText with an explicit per-character delay.
func (s *Session) SendTextWithDelay(text string, delay time.Duration) error {
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		unit := text[i : i+size]
		if unit == "\n" {
			unit = "\r"
		}
		i += size
		if err := s.write([]byte(unit)); err != nil {
			return err
		}
		if delay > 0 {
			time.Sleep(delay)
		}
	}
	time.Sleep(s.opts.settleDelay)
	s.Drain(s.opts.keyDrain)
	return nil
}

// SendKey sends a named key.
func (s *Session) SendKey(k escape.Key) error {
	b, err := k.Bytes()
	if err != nil {
		return err
	}
	if err := s.write(b); err != nil {
		return err
	}
	time.Sleep(s.opts.settleDelay)
	s.Drain(s.opts.keyDrain)
	return nil
}

// SendControlChar sends Ctrl+letter.
func (s *Session) SendControlChar(letter byte) error {
	code, err := escape.Ctrl(letter)
	if err != nil {
		return err
	}
	if err := s.write([]byte{code}); err != nil {
		return err
	}
	time.Sleep(s.opts.ctrlDelay)
	s.Drain(s.opts.ctrlDrain)
	return nil
}

func (s *Session) write(b []byte) error {
	if s.closed {
		return ErrClosed
	}
	if _, err := s.ptmx.Write(b); err != nil {
		return fmt.Errorf("write to terminal: %w", err)
	}
	return nil
}

// Drain reads whatever output becomes available within budget and applies
// it to the screen. It stops early once the terminal is idle for a poll
// interval or has nothing more to give. Read errors end the drain quietly.
func (s *Session) Drain(budget time.Duration) int {
	if s.closed {
		return 0
	}
	total := 0
	deadline := time.Now().Add(budget)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		timeout := min(remaining, s.opts.pollInterval)
		fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, max(1, int(timeout.Milliseconds())))
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			break
		}
		if n == 0 || fds[0].Revents&(unix.POLLIN|unix.POLLHUP) == 0 {
			break
		}
		m, err := s.ptmx.Read(s.readBuf)
		if m > 0 {
			s.consume(s.readBuf[:m])
			total += m
		}
		if err != nil {
			break
		}
	}
	if total > 0 {
		s.log.Printf("drained %d bytes (screen clears so far: %d)", total, s.frame.Clears())
	}
	return total
}

// consume applies one chunk of output. Query replies are computed after the
// chunk reaches the screen so position reports see the moves preceding them.
func (s *Session) consume(chunk []byte) {
	s.output.Append(chunk)
	s.frame.Write(chunk)
	if s.transcript != nil {
		if err := s.transcript.Append(chunk); err != nil {
			s.log.Printf("transcript: %v", err)
		}
	}
	s.emu.Write(chunk)
	if s.responder != nil {
		s.responder.Process(chunk)
	}
}

// Resize changes the terminal dimensions and notifies the program. The grid
// model starts blank at the new size; the program is expected to redraw.
func (s *Session) Resize(cols, rows int) error {
	if s.closed {
		return ErrClosed
	}
	if err := checkSize(cols, rows); err != nil {
		return err
	}
	if err := pty.Setsize(s.ptmx, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		return fmt.Errorf("resize terminal: %w", err)
	}
	if r, ok := s.emu.(resizer); ok {
		r.Resize(cols, rows)
	} else {
		emu, err := NewEmulator(s.opts.emulator, cols, rows, nil)
		if err != nil {
			return err
		}
		s.emu = emu
		s.frame.Reset()
	}
	if s.responder != nil {
		s.responder.SetSize(cols, rows)
	}
	s.cols, s.rows = cols, rows
	s.log.Printf("resized to %dx%d", cols, rows)
	time.Sleep(s.opts.settleDelay)
	s.Drain(s.opts.keyDrain)
	return nil
}

// Shutdown types the configured quit keys, then closes the terminal. It
// never fails: a program that already exited is fine, and repeated calls
// do nothing.
func (s *Session) Shutdown() {
	if s.closed {
		return
	}
	if s.opts.quitKeys != "" {
		select {
		case <-s.done:
		default:
			if err := s.SendText(s.opts.quitKeys); err != nil {
				s.log.Printf("quit keys: %v", err)
			}
			time.Sleep(s.opts.settleDelay)
		}
	}
	s.closed = true
	s.ptmx.Close()
	if s.transcript != nil {
		s.transcript.Close()
	}
	closeEmulator(s.emu)
	s.log.Printf("shutdown pid=%d", s.cmd.Process.Pid)
}
