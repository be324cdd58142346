package session

import "time"

const (
	DefaultCols = 120
	DefaultRows = 30

	// DefaultKeyDelay paces typed text. Line editors and full-screen
	// programs that read input one byte at a time can drop or reorder a
	// burst.
	DefaultKeyDelay = 2 * time.Millisecond

	DefaultStartupDelay = 10 * time.Millisecond
	DefaultSettleDelay  = 10 * time.Millisecond
	DefaultCtrlDelay    = 5 * time.Millisecond

	DefaultStartupDrain = 10 * time.Millisecond
	DefaultKeyDrain     = 20 * time.Millisecond
	DefaultCtrlDrain    = 10 * time.Millisecond
	DefaultScreenDrain  = 5 * time.Millisecond
	DefaultPollInterval = 10 * time.Millisecond

	DefaultWaitTimeout = 5 * time.Second

	ReadBufferSize       = 4096
	DefaultMaxOutputSize = 10 * 1024 * 1024 // 10 MB

	DefaultTerm = "xterm-256color"

	EmulatorGrid = "grid"
	EmulatorVT   = "vt"

	DebugEnv    = "PTYPROBE_DEBUG"
	KeyDelayEnv = "PTYPROBE_KEY_DELAY"
)

// EditorCandidates are tried in order by StartEditor.
var EditorCandidates = []string{"nvim", "vi", "vim"}

const (
	EditorConfigFlag = "-u"
	EditorQuitKeys   = ":q!\n"
)
