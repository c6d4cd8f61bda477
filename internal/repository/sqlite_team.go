package repository

import (
	"context"
	"fmt"

	"github.com/tallyhq/tally/internal/aggregate"
	"github.com/tallyhq/tally/internal/db"
	"github.com/tallyhq/tally/internal/domain"
)

// SQLiteTeamRepo implements TeamRepo using the local SQLite store.
type SQLiteTeamRepo struct {
	db db.DBTX
}

func NewSQLiteTeamRepo(db db.DBTX) *SQLiteTeamRepo {
	return &SQLiteTeamRepo{db: db}
}

func (r *SQLiteTeamRepo) AddMember(ctx context.Context, projectID, employeeID string) error {
	query := `INSERT OR IGNORE INTO project_members (project_id, employee_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, projectID, employeeID); err != nil {
		return fmt.Errorf("adding project member: %w", err)
	}
	return nil
}

// GetProjectTeam returns the authoritative membership list for a project.
func (r *SQLiteTeamRepo) GetProjectTeam(ctx context.Context, projectID string) ([]*domain.TeamMember, error) {
	query := `SELECT e.id, e.name
		FROM project_members m
		JOIN employees e ON m.employee_id = e.id
		WHERE m.project_id = ?
		ORDER BY e.name`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project team: %w", err)
	}
	defer rows.Close()

	var members []*domain.TeamMember
	for rows.Next() {
		m := &domain.TeamMember{Source: domain.TeamSourceMembership}
		if err := rows.Scan(&m.EmployeeID, &m.Name); err != nil {
			return nil, fmt.Errorf("scanning team member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team members: %w", err)
	}
	return members, nil
}

// GetEmployeeStats computes the per-employee hours/cost breakdown for a
// project from its time entries and the employee directory.
func (r *SQLiteTeamRepo) GetEmployeeStats(ctx context.Context, projectID string) ([]*domain.EmployeeBreakdown, error) {
	query := `SELECT t.employee_id,
			COALESCE(e.name, ''),
			COALESCE(e.monthly_salary, 0),
			e.hourly_rate,
			SUM(t.duration_minutes)
		FROM time_entries t
		LEFT JOIN employees e ON t.employee_id = e.id
		WHERE t.project_id = ? AND t.employee_id != ''
		GROUP BY t.employee_id
		ORDER BY SUM(t.duration_minutes) DESC`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("computing employee stats: %w", err)
	}
	defer rows.Close()

	var stats []*domain.EmployeeBreakdown
	for rows.Next() {
		var b domain.EmployeeBreakdown
		var emp domain.Employee
		var rate *float64
		var minutes int
		if err := rows.Scan(&b.EmployeeID, &b.Name, &emp.MonthlySalary, &rate, &minutes); err != nil {
			return nil, fmt.Errorf("scanning employee stats: %w", err)
		}
		emp.HourlyRate = rate
		b.Hours = aggregate.PreciseHours(minutes)
		b.Cost = b.Hours * aggregate.HourlyRate(&emp)
		stats = append(stats, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employee stats: %w", err)
	}
	return stats, nil
}
