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

// SQLiteProjectRepo implements ProjectRepo using the local SQLite store.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(db db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := nowUTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `INSERT INTO projects (id, client_id, name, budget, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ClientID, p.Name, p.Budget,
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT id, client_id, name, budget, created_at, updated_at FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var p domain.Project
	var createdStr, updatedStr string
	if err := row.Scan(&p.ID, &p.ClientID, &p.Name, &p.Budget, &createdStr, &updatedStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT id, client_id, name, budget, created_at, updated_at FROM projects ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		var createdStr, updatedStr string
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Name, &p.Budget, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		if p.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// SQLiteTaskRepo implements TaskRepo using the local SQLite store.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := nowUTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `INSERT INTO tasks (id, project_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.ProjectID, t.Name,
		t.CreatedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT id, project_id, name, created_at, updated_at FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var t domain.Task
	var createdStr, updatedStr string
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Name, &createdStr, &updatedStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	var err error
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT id, project_id, name, created_at, updated_at FROM tasks WHERE project_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var createdStr, updatedStr string
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		if t.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}
