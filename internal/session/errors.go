package session

import (
	"errors"
	"fmt"
)

// ErrClosed is returned for input sent after Shutdown.
var ErrClosed = errors.New("session closed")

// LaunchError reports that the program could not be found or spawned.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}
