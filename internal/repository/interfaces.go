package repository

import (
	"context"
	"errors"

	"github.com/tallyhq/tally/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist in the store.
var ErrNotFound = errors.New("not found")

// EntryFilter narrows a time entry listing. Zero-valued fields are ignored.
// Dates are work dates in YYYY-MM-DD form, compared inclusively.
type EntryFilter struct {
	TaskID     string
	EmployeeID string
	ProjectID  string
	StartDate  string
	EndDate    string
}

// TimeEntryRepo is the store adapter for durable time entries. The store
// assigns IDs and created/updated timestamps; callers re-fetch after writes
// rather than trusting local projections.
type TimeEntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error)
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	List(ctx context.Context, f EntryFilter) ([]*domain.TimeEntry, error)
	Update(ctx context.Context, e *domain.TimeEntry) error
	Delete(ctx context.Context, id string) error
}

// TeamRepo exposes the authoritative team membership and the store-computed
// per-employee breakdown used as resolution fallbacks.
type TeamRepo interface {
	GetProjectTeam(ctx context.Context, projectID string) ([]*domain.TeamMember, error)
	GetEmployeeStats(ctx context.Context, projectID string) ([]*domain.EmployeeBreakdown, error)
	AddMember(ctx context.Context, projectID, employeeID string) error
}

// EmployeeRepo backs compensation lookups for budget rollups.
type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context) ([]*domain.Employee, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
}
