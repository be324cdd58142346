package ansi

import "unicode/utf8"

const (
	esc = 0x1B
	bel = 0x07
	del = 0x7F

	// MaxSequenceLen bounds an unterminated escape sequence. Longer ones are
	// dropped and parsing resumes in the ground state.
	MaxSequenceLen = 4096
)

type parseState int

const (
	stateGround parseState = iota
	stateEscape            // ESC seen
	stateCSI               // ESC [
	stateOSC               // ESC ]
	stateOSCEscape         // ESC ] ... ESC, expecting '\'
	stateCharset           // ESC ( or ESC ), expecting the designator
)

// handler receives what the parser recognizes.
type handler interface {
	print(r rune)
	// execute is called for CR, LF, BS and TAB only.
	execute(b byte)
	// dispatchCSI is called for well-formed CSI sequences with a letter
	// final byte. A leading '?' has already been stripped from params.
	dispatchCSI(params []byte, final byte)
}

// parser is the byte-level state machine shared by Decoder and Strip.
// Its state carries over between feed calls, so a sequence or UTF-8 rune
// split across reads is completed on the next call.
type parser struct {
	h       handler
	state   parseState
	seq     []byte // current sequence, starting with ESC
	invalid bool   // CSI parameters contained bytes outside [0-9;?]
	runeBuf []byte // partial multi-byte UTF-8 rune
}

func newParser(h handler) *parser {
	return &parser{h: h, seq: make([]byte, 0, 32)}
}

func (p *parser) feed(data []byte) {
	for _, b := range data {
		p.step(b)
	}
}

// pending returns the bytes of an unfinished sequence or rune.
func (p *parser) pending() []byte {
	if p.state != stateGround {
		return append([]byte{}, p.seq...)
	}
	return append([]byte{}, p.runeBuf...)
}

func (p *parser) step(b byte) {
	switch p.state {
	case stateGround:
		p.ground(b)
	case stateEscape:
		p.escape(b)
	case stateCSI:
		p.csi(b)
	case stateOSC:
		p.osc(b)
	case stateOSCEscape:
		p.oscEscape(b)
	case stateCharset:
		p.charset(b)
	}
}

func (p *parser) begin(b byte) {
	p.runeBuf = p.runeBuf[:0]
	p.seq = append(p.seq[:0], b)
	p.invalid = false
	p.state = stateEscape
}

func (p *parser) reset() {
	p.seq = p.seq[:0]
	p.invalid = false
	p.state = stateGround
}

// collect appends b to the current sequence, dropping the sequence when it
// grows past MaxSequenceLen.
func (p *parser) collect(b byte) {
	if len(p.seq) >= MaxSequenceLen {
		p.reset()
		return
	}
	p.seq = append(p.seq, b)
}

func (p *parser) ground(b byte) {
	if b >= 0x80 {
		p.multibyte(b)
		return
	}
	// An ASCII byte ends any partial rune; the partial is invalid.
	p.runeBuf = p.runeBuf[:0]

	switch {
	case b == esc:
		p.begin(b)
	case b == '\r', b == '\n', b == '\b', b == '\t':
		p.h.execute(b)
	case b >= 0x20 && b != del:
		p.h.print(rune(b))
	}
}

func (p *parser) multibyte(b byte) {
	p.runeBuf = append(p.runeBuf, b)
	if !utf8.FullRune(p.runeBuf) {
		return
	}
	r, size := utf8.DecodeRune(p.runeBuf)
	p.runeBuf = p.runeBuf[:0]
	if r == utf8.RuneError && size <= 1 {
		return
	}
	if r >= 0x80 && r < 0xA0 {
		return
	}
	p.h.print(r)
}

func (p *parser) escape(b byte) {
	switch {
	case b == '[':
		p.collect(b)
		p.state = stateCSI
	case b == ']':
		p.collect(b)
		p.state = stateOSC
	case b == '(' || b == ')':
		p.collect(b)
		p.state = stateCharset
	case b == esc:
		p.begin(b)
	case b >= 0x20 && b < del:
		// ESC >, ESC <, ESC = and other two-byte escapes.
		p.reset()
	default:
		// Not an escape after all; drop the ESC and reprocess b.
		p.reset()
		p.ground(b)
	}
}

func (p *parser) csi(b byte) {
	switch {
	case b >= '0' && b <= '9', b == ';', b == '?':
		p.collect(b)
	case b >= 0x40 && b <= 0x7E:
		if !p.invalid && isLetter(b) {
			params := p.seq[2:]
			if len(params) > 0 && params[0] == '?' {
				params = params[1:]
			}
			p.h.dispatchCSI(params, b)
		}
		p.reset()
	case b == bel:
		p.reset()
	case b == esc:
		p.abandon(b)
	case b < 0x20 || b == del:
		// Consumed inside the sequence.
	default:
		p.invalid = true
		p.collect(b)
	}
}

// abandon gives up on an unterminated CSI interrupted by a new ESC. The
// bytes after the introducer are replayed as ordinary input.
func (p *parser) abandon(b byte) {
	replay := append([]byte{}, p.seq[1:]...)
	p.reset()
	p.feed(replay)
	p.begin(b)
}

func (p *parser) osc(b byte) {
	switch b {
	case bel:
		p.reset()
	case esc:
		p.collect(b)
		p.state = stateOSCEscape
	default:
		p.collect(b)
	}
}

func (p *parser) oscEscape(b byte) {
	if b == '\\' {
		p.reset()
		return
	}
	// Any other byte ends the string; the ESC starts a new sequence.
	p.begin(esc)
	p.escape(b)
}

func (p *parser) charset(b byte) {
	if b == esc {
		p.begin(b)
		return
	}
	p.reset()
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
