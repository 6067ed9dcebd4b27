package browser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSuchElement is returned when a lookup finds nothing within the implicit wait.
	ErrNoSuchElement = errors.New("no such element")
	// ErrStaleElement is returned when an element reference outlived the page it came from.
	ErrStaleElement = errors.New("stale element reference")
	// ErrSessionReleased is returned by any operation on a released session.
	ErrSessionReleased = errors.New("session released")
	// ErrNotInstalled is returned by Acquire when the driver or the browser binary is missing.
	ErrNotInstalled = errors.New("driver or browser not installed")
	// ErrNotSelect is returned when a dropdown wrapper is built on a non-select element.
	ErrNotSelect = errors.New("element is not a select")
)

// installHints are fragments of the driver's messages for a missing driver
// or browser executable.
var installHints = []string{
	"please install the driver",
	"executable doesn't exist",
	"playwright install",
}

// markNotInstalled wraps err with ErrNotInstalled when it reports a missing
// installation.
func markNotInstalled(err error) error {
	msg := strings.ToLower(err.Error())
	for _, hint := range installHints {
		if strings.Contains(msg, hint) {
			return fmt.Errorf("%w: %w", ErrNotInstalled, err)
		}
	}
	return err
}
