package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tallyhq/tally/internal/aggregate"
	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/repository"
)

type reportService struct {
	entries   repository.TimeEntryRepo
	employees repository.EmployeeRepo
	projects  repository.ProjectRepo
}

func NewReportService(entries repository.TimeEntryRepo, employees repository.EmployeeRepo, projects repository.ProjectRepo) ReportService {
	return &reportService{entries: entries, employees: employees, projects: projects}
}

func (s *reportService) WeekSummary(ctx context.Context, f repository.EntryFilter, anchor time.Time) (aggregate.Summary, error) {
	start := aggregate.WeekStart(anchor)
	entries, err := s.listRange(ctx, f, start, start.AddDate(0, 0, 6))
	if err != nil {
		return aggregate.Summary{}, err
	}
	return aggregate.WeekSummary(entries, anchor), nil
}

func (s *reportService) DashboardWeek(ctx context.Context, f repository.EntryFilter, anchor time.Time) (aggregate.Summary, error) {
	start := aggregate.WeekStart(anchor)
	entries, err := s.listRange(ctx, f, start, start.AddDate(0, 0, 6))
	if err != nil {
		return aggregate.Summary{}, err
	}
	return aggregate.DashboardWeek(entries, anchor), nil
}

func (s *reportService) MonthSummary(ctx context.Context, f repository.EntryFilter, anchor time.Time) (aggregate.Summary, error) {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	entries, err := s.listRange(ctx, f, first, first.AddDate(0, 1, -1))
	if err != nil {
		return aggregate.Summary{}, err
	}
	return aggregate.MonthSummary(entries, anchor), nil
}

func (s *reportService) MonthWeeks(ctx context.Context, f repository.EntryFilter, anchor time.Time) ([]aggregate.Bucket, error) {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	entries, err := s.listRange(ctx, f, first, first.AddDate(0, 1, -1))
	if err != nil {
		return nil, err
	}
	return aggregate.MonthWeeks(entries, anchor), nil
}

// BudgetRollup re-fetches the project's entries and the employee directory
// and derives the cost rollup against the project budget.
func (s *reportService) BudgetRollup(ctx context.Context, projectID string) (*BudgetReport, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", projectID, err)
	}

	entries, err := s.entries.List(ctx, repository.EntryFilter{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("listing project entries: %w", err)
	}

	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}

	return &BudgetReport{
		Project: project,
		Rollup:  aggregate.ComputeRollup(entries, employees, project.Budget),
	}, nil
}

func (s *reportService) listRange(ctx context.Context, f repository.EntryFilter, start, end time.Time) ([]*domain.TimeEntry, error) {
	f.StartDate = domain.DateOf(start)
	f.EndDate = domain.DateOf(end)
	entries, err := s.entries.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}
