package script

import "errors"

// Errors for script execution.
var (
	// ErrClosed is returned when running code on a closed Runtime.
	ErrClosed = errors.New("script runtime is closed")

	// ErrTimeout is returned when a script exceeds its timeout.
	ErrTimeout = errors.New("script execution timeout")

	// ErrCallLimit is returned when a script exceeds its history call budget.
	ErrCallLimit = errors.New("script call limit exceeded")
)
