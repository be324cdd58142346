package ansi

import "bytes"

// FrameTracker keeps the raw output written since the last full-screen
// clear. A clear sequence split across two writes is still recognized: the
// trailing bytes that could start one are held back until the next write.
type FrameTracker struct {
	pending []byte
	frame   []byte
	maxSize int
	clears  int
}

// Sequences that start a new frame:
// - ESC[2J (erase entire screen)
// - ESC[?1049h (switch to the alternate screen)
// - ESC c (full reset)
var clearSequences = [][]byte{
	[]byte("\x1b[2J"),
	[]byte("\x1b[?1049h"),
	[]byte("\x1bc"),
}

const maxClearSequenceLen = 8

// NewFrameTracker returns a tracker whose frame is capped at maxSize bytes,
// keeping the newest ones. maxSize <= 0 means unbounded.
func NewFrameTracker(maxSize int) *FrameTracker {
	return &FrameTracker{maxSize: maxSize}
}

// Write always consumes all of chunk.
func (f *FrameTracker) Write(chunk []byte) (int, error) {
	data := chunk
	if len(f.pending) > 0 {
		data = append(f.pending, chunk...)
		f.pending = nil
	}

	lastClearEnd := -1
	for i := 0; i < len(data); i++ {
		if data[i] != esc {
			continue
		}
		for _, seq := range clearSequences {
			if bytes.HasPrefix(data[i:], seq) {
				lastClearEnd = i + len(seq)
				f.clears++
			}
		}
	}

	keep := len(data)
	for i := max(0, len(data)-maxClearSequenceLen); i < len(data); i++ {
		if data[i] == esc && couldStartClear(data[i:]) {
			keep = i
			break
		}
	}
	if keep < len(data) {
		f.pending = append([]byte{}, data[keep:]...)
	}

	if lastClearEnd >= 0 {
		f.frame = append(f.frame[:0], data[lastClearEnd:keep]...)
	} else {
		f.frame = append(f.frame, data[:keep]...)
	}
	if f.maxSize > 0 && len(f.frame) > f.maxSize {
		f.frame = append(f.frame[:0], f.frame[len(f.frame)-f.maxSize:]...)
	}
	return len(chunk), nil
}

func couldStartClear(tail []byte) bool {
	for _, seq := range clearSequences {
		if len(tail) < len(seq) && bytes.HasPrefix(seq, tail) {
			return true
		}
	}
	return false
}

// Frame returns a copy of the bytes written since the last clear,
// including a held-back tail that may still turn into one.
func (f *FrameTracker) Frame() []byte {
	out := make([]byte, 0, len(f.frame)+len(f.pending))
	out = append(out, f.frame...)
	return append(out, f.pending...)
}

// Clears reports how many clear sequences have been seen.
func (f *FrameTracker) Clears() int {
	return f.clears
}

// Reset starts an empty frame, as after a clear.
func (f *FrameTracker) Reset() {
	f.pending = nil
	f.frame = f.frame[:0]
}
