package timer

import "errors"

var (
	// ErrInvalidTransition signals an illegal state change, such as stopping
	// an idle timer or starting one that is already running.
	ErrInvalidTransition = errors.New("invalid timer transition")

	// ErrMinimumDuration signals a stop attempted before 60 seconds of
	// elapsed time. The session remains running.
	ErrMinimumDuration = errors.New("minimum session duration not met")
)
