package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tallyhq/tally/internal/db"
	"github.com/tallyhq/tally/internal/domain"
)

// SQLiteEmployeeRepo implements EmployeeRepo using the local SQLite store.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

func NewSQLiteEmployeeRepo(db db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: db}
}

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := nowUTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `INSERT INTO employees (id, name, monthly_salary, hourly_rate, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Name, e.MonthlySalary,
		nullableFloatToValue(e.HourlyRate),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT id, name, monthly_salary, hourly_rate, created_at, updated_at
		FROM employees WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	e, err := scanEmployee(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	return e, nil
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	query := `SELECT id, name, monthly_salary, hourly_rate, created_at, updated_at
		FROM employees ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}

func scanEmployee(scan func(...any) error) (*domain.Employee, error) {
	var e domain.Employee
	var rate sql.NullFloat64
	var createdStr, updatedStr string

	if err := scan(&e.ID, &e.Name, &e.MonthlySalary, &rate, &createdStr, &updatedStr); err != nil {
		return nil, err
	}
	if rate.Valid {
		v := rate.Float64
		e.HourlyRate = &v
	}
	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &e, nil
}
