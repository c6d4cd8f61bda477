package timer

import (
	"time"

	"github.com/tallyhq/tally/internal/domain"
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	// StateStopped is stopped-pending-save: the duration has been computed
	// and an entry built, but it has not yet been persisted.
	StateStopped State = "stopped_pending_save"
)

// MinSessionSeconds is the shortest session a stop will accept.
const MinSessionSeconds = 60

// Session is the ephemeral per-task timer. It is never persisted; a process
// kill while running loses it, which is an accepted limitation of the
// design rather than a recoverable fault.
type Session struct {
	TaskID     string
	EmployeeID string
	State      State
	StartedAt  time.Time

	// Pending holds the entry built by Stop, awaiting persistence. Cleared
	// on save or discard.
	Pending *domain.TimeEntry
}

// Elapsed returns the running time as observed at now. Purely observational;
// correct across process suspension since it derives from StartedAt.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if s.State == StateIdle {
		return 0
	}
	if s.State == StateStopped && s.Pending != nil {
		return s.Pending.EndTime.Sub(s.StartedAt)
	}
	return now.Sub(s.StartedAt)
}
