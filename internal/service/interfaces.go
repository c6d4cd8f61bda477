package service

import (
	"context"
	"time"

	"github.com/tallyhq/tally/internal/aggregate"
	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/repository"
	"github.com/tallyhq/tally/internal/timer"
)

// TimerService drives the live timer lifecycle: Start and Stop transition
// the per-task state machine, Save persists the pending entry. Save failures
// leave the pending entry intact for retry; Discard is the explicit cancel.
type TimerService interface {
	Start(ctx context.Context, taskID, employeeID string) (*timer.Session, error)
	Stop(ctx context.Context, taskID string) (*timer.Session, error)
	Save(ctx context.Context, taskID string) (*domain.TimeEntry, error)
	Discard(taskID string)
	Elapsed(taskID string) time.Duration
	Session(taskID string) (*timer.Session, bool)
}

// EntryService covers manual entry logging and the edit-with-audit flow.
type EntryService interface {
	Log(ctx context.Context, req LogRequest) (*domain.TimeEntry, error)
	Edit(ctx context.Context, id string, newStart, newEnd time.Time) (*domain.TimeEntry, error)
	Get(ctx context.Context, id string) (*domain.TimeEntry, error)
	List(ctx context.Context, f repository.EntryFilter) ([]*domain.TimeEntry, error)
	Delete(ctx context.Context, id string) error
}

// LogRequest is a manual time entry submission. WorkDate defaults to the
// start time's date when empty.
type LogRequest struct {
	TaskID      string
	EmployeeID  string
	WorkDate    string
	StartTime   time.Time
	EndTime     time.Time
	Description string
}

// TeamService resolves project team membership through the fallback chain.
type TeamService interface {
	ResolveTeam(ctx context.Context, projectID string) ([]*domain.TeamMember, error)
}

// ReportService re-fetches entries from the store and derives summaries.
// Derivation itself is pure; the service exists so every report reflects the
// store's latest data rather than a stale local copy.
type ReportService interface {
	WeekSummary(ctx context.Context, f repository.EntryFilter, anchor time.Time) (aggregate.Summary, error)
	DashboardWeek(ctx context.Context, f repository.EntryFilter, anchor time.Time) (aggregate.Summary, error)
	MonthSummary(ctx context.Context, f repository.EntryFilter, anchor time.Time) (aggregate.Summary, error)
	MonthWeeks(ctx context.Context, f repository.EntryFilter, anchor time.Time) ([]aggregate.Bucket, error)
	BudgetRollup(ctx context.Context, projectID string) (*BudgetReport, error)
}

// BudgetReport pairs the rollup with its project for display.
type BudgetReport struct {
	Project *domain.Project
	Rollup  aggregate.Rollup
}

// AdminService manages the reference records entries hang off: projects,
// tasks, employees, and team membership.
type AdminService interface {
	CreateProject(ctx context.Context, p *domain.Project, taskNames []string) error
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error)
	AddEmployee(ctx context.Context, e *domain.Employee) error
	ListEmployees(ctx context.Context) ([]*domain.Employee, error)
	AddMember(ctx context.Context, projectID, employeeID string) error
}
