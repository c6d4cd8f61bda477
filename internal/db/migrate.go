package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// additions tolerate re-runs.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		client_id  TEXT NOT NULL DEFAULT '',
		name       TEXT NOT NULL,
		budget     REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		monthly_salary REAL NOT NULL DEFAULT 0,
		hourly_rate    REAL,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_members (
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		PRIMARY KEY (project_id, employee_id)
	)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id                  TEXT PRIMARY KEY,
		task_id             TEXT NOT NULL,
		employee_id         TEXT NOT NULL DEFAULT '',
		project_id          TEXT NOT NULL DEFAULT '',
		work_date           TEXT NOT NULL,
		start_time          TEXT NOT NULL,
		end_time            TEXT NOT NULL,
		original_start_time TEXT,
		original_end_time   TEXT,
		duration_minutes    INTEGER NOT NULL CHECK(duration_minutes >= 1),
		description         TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_entries_task ON time_entries(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_employee ON time_entries(employee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_project ON time_entries(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_work_date ON time_entries(work_date)`,
}
