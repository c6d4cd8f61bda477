package service

import "errors"

var (
	// ErrInvalidTimeRange signals an edit whose normalized duration is not
	// positive. No write occurs.
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrPersistence signals a store failure during create or update. The
	// in-memory state being written is preserved so the caller can retry.
	ErrPersistence = errors.New("persistence failure")
)
