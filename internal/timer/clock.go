package timer

import "time"

// Clock abstracts the wall-clock source so the state machine can be driven
// deterministically in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
