package timer

import (
	"fmt"
	"sync"
	"time"

	"github.com/tallyhq/tally/internal/domain"
)

// Controller owns all live timer sessions, keyed by task ID. One session per
// task; the Start guard enforces at most one running timer per task.
type Controller struct {
	mu       sync.Mutex
	clock    Clock
	sessions map[string]*Session
}

func NewController(clock Clock) *Controller {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Controller{
		clock:    clock,
		sessions: make(map[string]*Session),
	}
}

// Start transitions a task's timer from Idle to Running. Starting while
// Running, or while a stopped session awaits persistence, is rejected.
func (c *Controller) Start(taskID, employeeID string) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.sessions[taskID]; ok {
		switch existing.State {
		case StateRunning:
			return nil, fmt.Errorf("task %s already has a running timer: %w", taskID, ErrInvalidTransition)
		case StateStopped:
			return nil, fmt.Errorf("task %s has an unsaved session pending: %w", taskID, ErrInvalidTransition)
		}
	}

	s := &Session{
		TaskID:     taskID,
		EmployeeID: employeeID,
		State:      StateRunning,
		StartedAt:  c.clock.Now(),
	}
	c.sessions[taskID] = s
	return s, nil
}

// Stop transitions Running to stopped-pending-save, building the entry to be
// persisted. A stop before MinSessionSeconds fails and the session remains
// Running; the caller must wait or discard explicitly.
func (c *Controller) Stop(taskID string) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[taskID]
	if !ok || s.State != StateRunning {
		return nil, fmt.Errorf("no running timer for task %s: %w", taskID, ErrInvalidTransition)
	}

	now := c.clock.Now()
	if now.Sub(s.StartedAt) < MinSessionSeconds*time.Second {
		return nil, fmt.Errorf("session under %ds: %w", MinSessionSeconds, ErrMinimumDuration)
	}

	s.State = StateStopped
	s.Pending = &domain.TimeEntry{
		TaskID:          s.TaskID,
		EmployeeID:      s.EmployeeID,
		WorkDate:        domain.DateOf(s.StartedAt),
		StartTime:       s.StartedAt,
		EndTime:         now,
		DurationMinutes: domain.ComputeDuration(s.StartedAt, now),
	}
	return s, nil
}

// Pending returns the unsaved entry for a task, if one exists.
func (c *Controller) Pending(taskID string) (*domain.TimeEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[taskID]
	if !ok || s.State != StateStopped || s.Pending == nil {
		return nil, false
	}
	return s.Pending, true
}

// MarkSaved destroys the session after its pending entry was persisted,
// returning the task's timer to Idle.
func (c *Controller) MarkSaved(taskID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[taskID]
	if !ok || s.State != StateStopped {
		return fmt.Errorf("no pending session for task %s: %w", taskID, ErrInvalidTransition)
	}
	delete(c.sessions, taskID)
	return nil
}

// Discard drops a session regardless of state. Used for the explicit user
// cancel of either a running timer or an unsaved stop.
func (c *Controller) Discard(taskID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, taskID)
}

// Get returns the session for a task, if any.
func (c *Controller) Get(taskID string) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[taskID]
	return s, ok
}

// Elapsed reports the observed running time for a task's timer, or zero when
// the task is idle.
func (c *Controller) Elapsed(taskID string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[taskID]
	if !ok {
		return 0
	}
	return s.Elapsed(c.clock.Now())
}
