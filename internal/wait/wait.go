package wait

import (
	"fmt"
	"regexp"
	"time"
)

const DefaultPollInterval = 50 * time.Millisecond

// ReadFunc returns the current screen and a version that changes whenever
// new output has been applied to it.
type ReadFunc func() (screen string, version uint64, err error)

type Config struct {
	// Pattern is a regular expression matched against the whole screen.
	Pattern string
	// Settle returns once the version has not changed for this long.
	Settle       time.Duration
	Timeout      time.Duration
	PollInterval time.Duration
}

// ForScreen polls readFn until the screen matches cfg.Pattern or, without a
// pattern, until it stops changing for cfg.Settle. On timeout it returns the
// last screen along with an error.
func ForScreen(readFn ReadFunc, cfg Config) (string, error) {
	var re *regexp.Regexp
	if cfg.Pattern != "" {
		var err error
		re, err = regexp.Compile(cfg.Pattern)
		if err != nil {
			return "", fmt.Errorf("invalid pattern: %w", err)
		}
	}

	pollInterval := cfg.PollInterval
	if pollInterval == 0 {
		pollInterval = DefaultPollInterval
	}

	deadline := time.Now().Add(cfg.Timeout)

	screen, lastVersion, err := readFn()
	if err != nil {
		return "", err
	}
	lastChangeTime := time.Now()

	for {
		if re != nil && re.MatchString(screen) {
			return screen, nil
		}
		if re == nil && time.Since(lastChangeTime) >= cfg.Settle {
			return screen, nil
		}
		if !time.Now().Before(deadline) {
			break
		}

		time.Sleep(pollInterval)

		var version uint64
		screen, version, err = readFn()
		if err != nil {
			return "", err
		}
		if version != lastVersion {
			lastVersion = version
			lastChangeTime = time.Now()
		}
	}

	if re != nil {
		return screen, fmt.Errorf("timeout waiting for pattern %q", cfg.Pattern)
	}
	return screen, fmt.Errorf("timeout waiting for screen to settle")
}
