package session

import "sync"

// outputBuffer keeps every raw byte read from the terminal, dropping the
// oldest bytes once maxSize is exceeded.
type outputBuffer struct {
	mu      sync.Mutex
	data    []byte
	maxSize int
	dropped int64
}

func newOutputBuffer(maxSize int) *outputBuffer {
	return &outputBuffer{maxSize: maxSize}
}

func (b *outputBuffer) Append(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = append(b.data, data...)
	if b.maxSize > 0 && len(b.data) > b.maxSize {
		excess := len(b.data) - b.maxSize
		b.data = b.data[excess:]
		b.dropped += int64(excess)
	}
}

func (b *outputBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

func (b *outputBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Dropped reports how many bytes were trimmed from the front so far.
func (b *outputBuffer) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

func (b *outputBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = nil
}
