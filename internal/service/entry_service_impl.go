package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/repository"
)

type entryService struct {
	entries  repository.TimeEntryRepo
	tasks    repository.TaskRepo
	observer UseCaseObserver
}

func NewEntryService(entries repository.TimeEntryRepo, tasks repository.TaskRepo, observer UseCaseObserver) EntryService {
	if observer == nil {
		observer = NoopUseCaseObserver{}
	}
	return &entryService{entries: entries, tasks: tasks, observer: observer}
}

// Log creates a manual entry. The duration is always recomputed from the
// submitted times, with the same cross-midnight and minimum-duration rules
// as the timer path.
func (s *entryService) Log(ctx context.Context, req LogRequest) (*domain.TimeEntry, error) {
	started := time.Now()
	stored, err := s.log(ctx, req)
	s.observe(ctx, "entry_log", started, err, map[string]any{"task_id": req.TaskID})
	return stored, err
}

func (s *entryService) log(ctx context.Context, req LogRequest) (*domain.TimeEntry, error) {
	minutes := domain.ComputeDuration(req.StartTime, req.EndTime)
	if minutes < domain.MinEntryMinutes {
		return nil, fmt.Errorf("duration %dm: %w", minutes, ErrInvalidTimeRange)
	}

	e := &domain.TimeEntry{
		TaskID:          req.TaskID,
		EmployeeID:      req.EmployeeID,
		WorkDate:        domain.CoalesceStr(req.WorkDate, domain.DateOf(req.StartTime)),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: minutes,
		Description:     req.Description,
	}

	if s.tasks != nil {
		if task, err := s.tasks.GetByID(ctx, req.TaskID); err == nil {
			e.ProjectID = task.ProjectID
		}
	}

	stored, err := s.entries.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return stored, nil
}

// Edit applies new times to an existing entry, capturing the first-ever
// original start/end for the audit trail. The pre-edit entry is never
// modified in the store unless the full update succeeds, and the result is
// re-fetched so the store stays the source of truth for UpdatedAt.
func (s *entryService) Edit(ctx context.Context, id string, newStart, newEnd time.Time) (*domain.TimeEntry, error) {
	started := time.Now()
	stored, err := s.edit(ctx, id, newStart, newEnd)
	s.observe(ctx, "entry_edit", started, err, map[string]any{"entry_id": id})
	return stored, err
}

func (s *entryService) edit(ctx context.Context, id string, newStart, newEnd time.Time) (*domain.TimeEntry, error) {
	minutes := domain.ComputeDuration(newStart, newEnd)
	if minutes < domain.MinEntryMinutes {
		return nil, fmt.Errorf("duration %dm: %w", minutes, ErrInvalidTimeRange)
	}

	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading entry %s: %w", id, err)
	}

	// First edit captures the pre-edit values; later edits leave them alone.
	e.CaptureOriginal()

	// The work date is left untouched: it is the date the work is attributed
	// to, not a function of the edited timestamps.
	e.StartTime = newStart
	e.EndTime = newEnd
	e.DurationMinutes = minutes

	if err := s.entries.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Reload rather than trusting the local projection.
	updated, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reloading entry %s: %w", id, err)
	}
	return updated, nil
}

func (s *entryService) Get(ctx context.Context, id string) (*domain.TimeEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *entryService) List(ctx context.Context, f repository.EntryFilter) ([]*domain.TimeEntry, error) {
	return s.entries.List(ctx, f)
}

func (s *entryService) Delete(ctx context.Context, id string) error {
	started := time.Now()
	err := s.entries.Delete(ctx, id)
	s.observe(ctx, "entry_delete", started, err, map[string]any{"entry_id": id})
	return err
}

func (s *entryService) observe(ctx context.Context, name string, started time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(started),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: started,
	})
}
