package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// transcript records raw terminal output to a file. The file stays
// exclusively locked while the session runs so two sessions cannot
// interleave into the same recording.
type transcript struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

func openTranscript(path string) (*transcript, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create transcript dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock transcript %s: %w", path, err)
	}
	if err := f.Truncate(0); err != nil {
		f.Close()
		return nil, fmt.Errorf("truncate transcript: %w", err)
	}
	return &transcript{f: f, path: path}, nil
}

func (t *transcript) Append(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.f == nil {
		return ErrClosed
	}
	if _, err := t.f.Write(data); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

func (t *transcript) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.f == nil {
		return nil
	}
	unix.Flock(int(t.f.Fd()), unix.LOCK_UN)
	err := t.f.Close()
	t.f = nil
	return err
}
