package session

import (
	"bytes"
	"fmt"
	"os"
	"testing"
	"time"

	"golang.org/x/term"
)

// fakeAppEnv makes the test binary act as the program under test.
const fakeAppEnv = "PTYPROBE_FAKE_APP"

func TestMain(m *testing.M) {
	if mode := os.Getenv(fakeAppEnv); mode != "" {
		os.Exit(runFakeApp(mode))
	}
	os.Exit(m.Run())
}

const popupScreen = "\x1b[2J\x1b[Hbackground" +
	"\x1b[3;5H┌─ Menu ─┐" +
	"\x1b[4;5H│ first  │" +
	"\x1b[5;5H│ second │" +
	"\x1b[6;5H└────────┘"

func runFakeApp(mode string) int {
	fd := int(os.Stdin.Fd())
	if state, err := term.MakeRaw(fd); err == nil {
		defer term.Restore(fd, state)
	}
	out := os.Stdout

	switch mode {
	case "hello":
		out.WriteString("\x1b[2J\x1b[HHELLO")
	case "split":
		out.WriteString("stale text\x1b[")
		time.Sleep(150 * time.Millisecond)
		out.WriteString("2J\x1b[HFRESH")
	case "popup":
		out.WriteString(popupScreen)
	case "echo":
		out.WriteString("\x1b[2J\x1b[Hready>")
	case "hex":
		out.WriteString("\x1b[2J\x1b[Hbytes:")
	case "query":
		out.WriteString("\x1b[2J\x1b[3;7H\x1b[6n")
		reply := readUntil(os.Stdin, 'R')
		fmt.Fprintf(out, "\x1b[1;1Hpos=%s", bytes.TrimPrefix(reply, []byte("\x1b[")))
	case "sizequery":
		reportSize(out)
	case "exit":
		out.WriteString("bye")
		return 3
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", mode)
		return 2
	}

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if n == 0 || err != nil {
			return 0
		}
		b := buf[0]
		if b == 0x04 {
			return 0
		}
		if mode == "sizequery" && b == '?' {
			reportSize(out)
			continue
		}
		if mode == "hex" {
			fmt.Fprintf(out, " %02x", b)
			continue
		}
		if mode != "echo" {
			continue
		}
		switch {
		case b == 0x08 || b == 0x7f:
			out.WriteString("\b")
		case b == '\r':
			out.WriteString("\r\n")
		case b == 0x1b:
			out.WriteString("[ESC]")
		case b < 0x20:
			fmt.Fprintf(out, "^%c", b+64)
		default:
			out.Write([]byte{b})
		}
	}
}

// reportSize asks the terminal for its text area size and prints the reply.
func reportSize(out *os.File) {
	out.WriteString("\x1b[18t")
	reply := readUntil(os.Stdin, 't')
	fmt.Fprintf(out, "\x1b[2J\x1b[Hsize=%s", bytes.TrimPrefix(reply, []byte("\x1b[")))
}

func readUntil(f *os.File, stop byte) []byte {
	var got []byte
	buf := make([]byte, 1)
	for {
		n, err := f.Read(buf)
		if n == 0 || err != nil {
			return got
		}
		if buf[0] == stop {
			return got
		}
		got = append(got, buf[0])
	}
}
