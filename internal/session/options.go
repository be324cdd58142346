package session

import (
	"io"
	"log"
	"os"
	"time"
)

type options struct {
	args []string
	dir  string
	env  []string

	cols int
	rows int

	keyDelay     time.Duration
	startupDelay time.Duration
	settleDelay  time.Duration
	ctrlDelay    time.Duration

	startupDrain time.Duration
	keyDrain     time.Duration
	ctrlDrain    time.Duration
	screenDrain  time.Duration
	pollInterval time.Duration

	quitKeys       string
	emulator       string
	respond        bool
	maxOutputSize  int
	transcriptPath string
	logger         *log.Logger
}

// Option configures a Session.
type Option func(*options)

func defaultOptions() options {
	return options{
		cols:          DefaultCols,
		rows:          DefaultRows,
		keyDelay:      keyDelayFromEnv(),
		startupDelay:  DefaultStartupDelay,
		settleDelay:   DefaultSettleDelay,
		ctrlDelay:     DefaultCtrlDelay,
		startupDrain:  DefaultStartupDrain,
		keyDrain:      DefaultKeyDrain,
		ctrlDrain:     DefaultCtrlDrain,
		screenDrain:   DefaultScreenDrain,
		pollInterval:  DefaultPollInterval,
		emulator:      EmulatorGrid,
		maxOutputSize: DefaultMaxOutputSize,
		logger:        defaultLogger(),
	}
}

func keyDelayFromEnv() time.Duration {
	if v := os.Getenv(KeyDelayEnv); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}
	return DefaultKeyDelay
}

func defaultLogger() *log.Logger {
	if os.Getenv(DebugEnv) == "1" {
		return log.New(os.Stderr, "ptyprobe: ", log.Ltime|log.Lmicroseconds)
	}
	return log.New(io.Discard, "", 0)
}

// WithArgs sets the program arguments.
func WithArgs(args ...string) Option {
	return func(o *options) { o.args = args }
}

// WithDir sets the working directory of the program.
func WithDir(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// WithEnv adds KEY=VALUE entries. They override the inherited environment
// and the terminal variables set by Start.
func WithEnv(env ...string) Option {
	return func(o *options) { o.env = append(o.env, env...) }
}

// WithSize sets the terminal dimensions. Values below 1 are ignored; Start
// rejects values above 65535.
func WithSize(cols, rows int) Option {
	return func(o *options) {
		if cols > 0 {
			o.cols = cols
		}
		if rows > 0 {
			o.rows = rows
		}
	}
}

// WithKeyDelay sets the pause after each character sent by SendText.
func WithKeyDelay(d time.Duration) Option {
	return func(o *options) { o.keyDelay = d }
}

// WithStartupDrain sets how long Start reads output before returning.
func WithStartupDrain(d time.Duration) Option {
	return func(o *options) { o.startupDrain = d }
}

// WithKeyDrain sets how long output is read after typed text or a key.
func WithKeyDrain(d time.Duration) Option {
	return func(o *options) { o.keyDrain = d }
}

// WithScreenDrain sets how long queries read output before answering.
func WithScreenDrain(d time.Duration) Option {
	return func(o *options) { o.screenDrain = d }
}

// WithPollInterval sets the readiness poll granularity used by Drain.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// WithQuitKeys sets the text typed by Shutdown before closing the terminal.
func WithQuitKeys(keys string) Option {
	return func(o *options) { o.quitKeys = keys }
}

// WithEmulator selects the screen model: EmulatorGrid or EmulatorVT.
func WithEmulator(name string) Option {
	return func(o *options) { o.emulator = name }
}

// WithQueryResponses answers terminal capability queries (cursor position,
// device attributes) on behalf of the program.
func WithQueryResponses(enabled bool) Option {
	return func(o *options) { o.respond = enabled }
}

// WithMaxOutputSize caps the accumulated raw output. 0 means unbounded.
func WithMaxOutputSize(n int) Option {
	return func(o *options) { o.maxOutputSize = n }
}

// WithTranscript records all raw output to path.
func WithTranscript(path string) Option {
	return func(o *options) { o.transcriptPath = path }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
