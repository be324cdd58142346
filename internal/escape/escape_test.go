package escape

import (
	"testing"
)

func TestInterpret_Escapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"newline", `\n`, "\n"},
		{"carriage return", `\r`, "\r"},
		{"tab", `\t`, "\t"},
		{"escape", `\e`, "\x1b"},
		{"backslash", `\\`, "\\"},
		{"null", `\0`, "\x00"},
		{"hex ctrl-c", `\x03`, "\x03"},
		{"hex ctrl-d", `\x04`, "\x04"},
		{"hex uppercase", `\xFF`, "\xff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpret(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Interpret(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInterpret_PassThrough(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exclamation", `\!`, "!"},
		{"question mark", `\?`, "?"},
		{"slash", `\/`, "/"},
		{"angle", `\<`, "<"},
		{"at sign", `\@`, "@"},
		{"hash", `\#`, "#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpret(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Interpret(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInterpret_MixedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"text with known", `hello\nworld`, "hello\nworld"},
		{"text with unknown", `hello\!world`, "hello!world"},
		{"multiple escapes", `\t\n\r`, "\t\n\r"},
		{"known and unknown mixed", `\n\!\t\?`, "\n!\t?"},
		{"plain text only", "no escapes here", "no escapes here"},
		{"empty string", "", ""},
		{"named keys", `:q!<Enter>`, ":q!\r"},
		{"ctrl key", `<C-k><c-J>`, "\x0b\x0a"},
		{"arrow keys", `<Up><down>`, "\x1b[A\x1b[B"},
		{"escape aliases", `<Esc><Escape>`, "\x1b\x1b"},
		{"unknown key kept", `a<b>c`, "a<b>c"},
		{"unclosed angle", `1 < 2`, "1 < 2"},
		{"escaped angle", `\<Enter>`, "<Enter>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpret(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Interpret(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInterpret_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"trailing backslash", `hello\`},
		{"bad hex digits", `\xZZ`},
		{"incomplete hex", `\x0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Interpret(tt.input)
			if err == nil {
				t.Fatalf("expected error for input %q, got none", tt.input)
			}
		})
	}
}

func TestCtrl(t *testing.T) {
	tests := []struct {
		letter byte
		want   byte
	}{
		{'A', 0x01},
		{'a', 0x01},
		{'c', 0x03},
		{'K', 0x0b},
		{'z', 0x1a},
	}
	for _, tt := range tests {
		got, err := Ctrl(tt.letter)
		if err != nil {
			t.Fatalf("Ctrl(%q): %v", tt.letter, err)
		}
		if got != tt.want {
			t.Errorf("Ctrl(%q) = %#x, want %#x", tt.letter, got, tt.want)
		}
	}

	for _, bad := range []byte{'1', '@', '[', ' '} {
		if _, err := Ctrl(bad); err == nil {
			t.Errorf("Ctrl(%q) expected error", bad)
		}
	}
}

func TestKeyBytes(t *testing.T) {
	got, err := Enter.Bytes()
	if err != nil || string(got) != "\r" {
		t.Errorf("Enter.Bytes() = %q, %v", got, err)
	}
	got, err = Escape.Bytes()
	if err != nil || string(got) != "\x1b" {
		t.Errorf("Escape.Bytes() = %q, %v", got, err)
	}
	if _, err := Key("Hyper").Bytes(); err == nil {
		t.Error("expected error for unknown key")
	}
}
