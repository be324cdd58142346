package wait

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestForScreen_PatternMatch(t *testing.T) {
	screen := "loading...\nready"
	readFn := func() (string, uint64, error) {
		return screen, 1, nil
	}

	got, err := ForScreen(readFn, Config{Pattern: "ready", Timeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != screen {
		t.Errorf("got %q, want %q", got, screen)
	}
}

func TestForScreen_PatternAppearsLater(t *testing.T) {
	calls := 0
	readFn := func() (string, uint64, error) {
		calls++
		if calls < 3 {
			return "starting", uint64(calls), nil
		}
		return "prompt> ready", uint64(calls), nil
	}

	got, err := ForScreen(readFn, Config{
		Pattern:      `prompt> \w+`,
		Timeout:      2 * time.Second,
		PollInterval: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "ready") {
		t.Errorf("got %q, want it to contain 'ready'", got)
	}
	if calls < 3 {
		t.Errorf("readFn called %d times, want at least 3", calls)
	}
}

func TestForScreen_PatternTimeout(t *testing.T) {
	readFn := func() (string, uint64, error) {
		return "waiting...", 1, nil
	}

	got, err := ForScreen(readFn, Config{
		Pattern:      "never-match",
		Timeout:      100 * time.Millisecond,
		PollInterval: 10 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("expected timeout error, got %v", err)
	}
	if got != "waiting..." {
		t.Errorf("expected last screen on timeout, got %q", got)
	}
}

func TestForScreen_Settle(t *testing.T) {
	calls := 0
	readFn := func() (string, uint64, error) {
		calls++
		if calls < 4 {
			return "drawing", uint64(calls), nil
		}
		return "done", 4, nil
	}

	got, err := ForScreen(readFn, Config{
		Settle:       50 * time.Millisecond,
		Timeout:      2 * time.Second,
		PollInterval: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "done" {
		t.Errorf("got %q, want %q", got, "done")
	}
}

func TestForScreen_SettleTimeout(t *testing.T) {
	var version uint64
	readFn := func() (string, uint64, error) {
		version++
		return "busy", version, nil
	}

	_, err := ForScreen(readFn, Config{
		Settle:       time.Second,
		Timeout:      100 * time.Millisecond,
		PollInterval: 10 * time.Millisecond,
	})
	if err == nil || !strings.Contains(err.Error(), "settle") {
		t.Errorf("expected settle timeout, got %v", err)
	}
}

func TestForScreen_InvalidPattern(t *testing.T) {
	readFn := func() (string, uint64, error) {
		return "test", 1, nil
	}

	_, err := ForScreen(readFn, Config{Pattern: "[invalid", Timeout: time.Second})
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	if !strings.Contains(err.Error(), "invalid pattern") {
		t.Errorf("expected 'invalid pattern' error, got %v", err)
	}
}

func TestForScreen_ReadError(t *testing.T) {
	readErr := errors.New("read failed")
	readFn := func() (string, uint64, error) {
		return "", 0, readErr
	}

	_, err := ForScreen(readFn, Config{Pattern: "test", Timeout: time.Second})
	if !errors.Is(err, readErr) {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestForScreen_DefaultPollInterval(t *testing.T) {
	if DefaultPollInterval != 50*time.Millisecond {
		t.Errorf("expected default poll interval 50ms, got %v", DefaultPollInterval)
	}
}
