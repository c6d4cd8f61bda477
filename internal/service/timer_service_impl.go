package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/repository"
	"github.com/tallyhq/tally/internal/timer"
)

type timerService struct {
	timers   *timer.Controller
	entries  repository.TimeEntryRepo
	tasks    repository.TaskRepo
	observer UseCaseObserver
}

// NewTimerService wires the timer controller to the entry store. A nil
// observer disables telemetry.
func NewTimerService(timers *timer.Controller, entries repository.TimeEntryRepo, tasks repository.TaskRepo, observer UseCaseObserver) TimerService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &timerService{timers: timers, entries: entries, tasks: tasks, observer: observer}
}

func (s *timerService) Start(ctx context.Context, taskID, employeeID string) (*timer.Session, error) {
	started := time.Now()
	sess, err := s.timers.Start(taskID, employeeID)
	s.observe(ctx, "timer_start", started, err, map[string]any{"task_id": taskID})
	return sess, err
}

func (s *timerService) Stop(ctx context.Context, taskID string) (*timer.Session, error) {
	started := time.Now()
	sess, err := s.timers.Stop(taskID)
	s.observe(ctx, "timer_stop", started, err, map[string]any{"task_id": taskID})
	return sess, err
}

// Save persists the pending entry built by Stop. On store failure the
// pending entry is left in place and the session stays in its
// stopped-pending-save state, so Save can be retried.
func (s *timerService) Save(ctx context.Context, taskID string) (*domain.TimeEntry, error) {
	started := time.Now()
	stored, err := s.save(ctx, taskID)
	s.observe(ctx, "timer_save", started, err, map[string]any{"task_id": taskID})
	return stored, err
}

func (s *timerService) save(ctx context.Context, taskID string) (*domain.TimeEntry, error) {
	pending, ok := s.timers.Pending(taskID)
	if !ok {
		return nil, fmt.Errorf("no pending session for task %s: %w", taskID, timer.ErrInvalidTransition)
	}

	// Fill in the project reference from the task when available; the
	// pending entry is built by the state machine, which knows only the task.
	if pending.ProjectID == "" && s.tasks != nil {
		if task, err := s.tasks.GetByID(ctx, taskID); err == nil {
			pending.ProjectID = task.ProjectID
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: resolving task: %v", ErrPersistence, err)
		}
	}

	stored, err := s.entries.Create(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.timers.MarkSaved(taskID); err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *timerService) Discard(taskID string) {
	s.timers.Discard(taskID)
}

func (s *timerService) Elapsed(taskID string) time.Duration {
	return s.timers.Elapsed(taskID)
}

func (s *timerService) Session(taskID string) (*timer.Session, bool) {
	return s.timers.Get(taskID)
}

func (s *timerService) observe(ctx context.Context, name string, started time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}
