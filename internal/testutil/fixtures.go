package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/tallyhq/tally/internal/domain"
)

// Entry options

type EntryOption func(*domain.TimeEntry)

func WithEmployee(id string) EntryOption {
	return func(e *domain.TimeEntry) { e.EmployeeID = id }
}

func WithProject(id string) EntryOption {
	return func(e *domain.TimeEntry) { e.ProjectID = id }
}

func WithDescription(d string) EntryOption {
	return func(e *domain.TimeEntry) { e.Description = d }
}

func WithTimes(start, end time.Time) EntryOption {
	return func(e *domain.TimeEntry) {
		e.StartTime = start
		e.EndTime = end
		e.WorkDate = domain.DateOf(start)
		e.DurationMinutes = domain.ComputeDuration(start, end)
	}
}

// NewEntry builds a valid one-hour entry on 2024-01-08 for the given task,
// modified by opts.
func NewEntry(taskID string, opts ...EntryOption) *domain.TimeEntry {
	start := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	e := &domain.TimeEntry{
		TaskID:          taskID,
		EmployeeID:      "emp-1",
		WorkDate:        domain.DateOf(start),
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: domain.ComputeDuration(start, end),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Employee options

type EmployeeOption func(*domain.Employee)

func WithSalary(monthly float64) EmployeeOption {
	return func(e *domain.Employee) { e.MonthlySalary = monthly }
}

func WithHourlyRate(rate float64) EmployeeOption {
	return func(e *domain.Employee) { e.HourlyRate = &rate }
}

// NewEmployee builds an employee with a 48000 monthly salary (a derived
// rate of 250/h), modified by opts.
func NewEmployee(name string, opts ...EmployeeOption) *domain.Employee {
	e := &domain.Employee{
		ID:            uuid.New().String(),
		Name:          name,
		MonthlySalary: 48000,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewProject builds a project with the given budget.
func NewProject(name string, budget float64) *domain.Project {
	return &domain.Project{
		ID:     uuid.New().String(),
		Name:   name,
		Budget: budget,
	}
}

// NewTask builds a task under the given project.
func NewTask(projectID, name string) *domain.Task {
	return &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
	}
}
