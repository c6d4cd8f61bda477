package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tallyhq/tally/internal/db"
	"github.com/tallyhq/tally/internal/domain"
)

// SQLiteTimeEntryRepo implements TimeEntryRepo against the local SQLite store.
type SQLiteTimeEntryRepo struct {
	db db.DBTX
}

// NewSQLiteTimeEntryRepo creates a new SQLiteTimeEntryRepo.
func NewSQLiteTimeEntryRepo(db db.DBTX) *SQLiteTimeEntryRepo {
	return &SQLiteTimeEntryRepo{db: db}
}

const timeEntryColumns = `id, task_id, employee_id, project_id, work_date, start_time, end_time,
	original_start_time, original_end_time, duration_minutes, description, created_at, updated_at`

// Create persists a new entry. The store assigns the ID and the audit
// timestamps; the stored entry is returned.
func (r *SQLiteTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	stored := *e
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := nowUTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	query := `INSERT INTO time_entries (` + timeEntryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		stored.ID,
		stored.TaskID,
		stored.EmployeeID,
		stored.ProjectID,
		stored.WorkDate,
		stored.StartTime.Format(time.RFC3339),
		stored.EndTime.Format(time.RFC3339),
		nullableTimeToString(stored.OriginalStartTime, time.RFC3339),
		nullableTimeToString(stored.OriginalEndTime, time.RFC3339),
		stored.DurationMinutes,
		stored.Description,
		stored.CreatedAt.Format(time.RFC3339),
		stored.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting time entry: %w", err)
	}
	return &stored, nil
}

func (r *SQLiteTimeEntryRepo) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanEntry(row)
}

func (r *SQLiteTimeEntryRepo) List(ctx context.Context, f EntryFilter) ([]*domain.TimeEntry, error) {
	var conds []string
	var args []any
	if f.TaskID != "" {
		conds = append(conds, "task_id = ?")
		args = append(args, f.TaskID)
	}
	if f.EmployeeID != "" {
		conds = append(conds, "employee_id = ?")
		args = append(args, f.EmployeeID)
	}
	if f.ProjectID != "" {
		conds = append(conds, "project_id = ?")
		args = append(args, f.ProjectID)
	}
	if f.StartDate != "" {
		conds = append(conds, "work_date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		conds = append(conds, "work_date <= ?")
		args = append(args, f.EndDate)
	}

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY work_date, start_time"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

// Update writes the mutable fields of an entry and bumps updated_at. The
// caller is expected to re-fetch; the store remains the source of truth for
// the audit timestamps.
func (r *SQLiteTimeEntryRepo) Update(ctx context.Context, e *domain.TimeEntry) error {
	query := `UPDATE time_entries SET
		work_date = ?, start_time = ?, end_time = ?,
		original_start_time = ?, original_end_time = ?,
		duration_minutes = ?, description = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.WorkDate,
		e.StartTime.Format(time.RFC3339),
		e.EndTime.Format(time.RFC3339),
		nullableTimeToString(e.OriginalStartTime, time.RFC3339),
		nullableTimeToString(e.OriginalEndTime, time.RFC3339),
		e.DurationMinutes,
		e.Description,
		nowUTC().Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("time entry %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	return nil
}

// scanEntry scans a single entry from a *sql.Row.
func (r *SQLiteTimeEntryRepo) scanEntry(row *sql.Row) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	var startStr, endStr, createdStr, updatedStr string
	var origStart, origEnd sql.NullString

	err := row.Scan(
		&e.ID, &e.TaskID, &e.EmployeeID, &e.ProjectID, &e.WorkDate,
		&startStr, &endStr, &origStart, &origEnd,
		&e.DurationMinutes, &e.Description, &createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("time entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning time entry: %w", err)
	}
	return r.populateEntry(&e, startStr, endStr, createdStr, updatedStr, origStart, origEnd)
}

// scanEntries scans multiple entries from *sql.Rows.
func (r *SQLiteTimeEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		var startStr, endStr, createdStr, updatedStr string
		var origStart, origEnd sql.NullString

		err := rows.Scan(
			&e.ID, &e.TaskID, &e.EmployeeID, &e.ProjectID, &e.WorkDate,
			&startStr, &endStr, &origStart, &origEnd,
			&e.DurationMinutes, &e.Description, &createdStr, &updatedStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning time entry row: %w", err)
		}

		entry, parseErr := r.populateEntry(&e, startStr, endStr, createdStr, updatedStr, origStart, origEnd)
		if parseErr != nil {
			return nil, parseErr
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}

// populateEntry fills in parsed fields after scanning raw strings.
func (r *SQLiteTimeEntryRepo) populateEntry(e *domain.TimeEntry, startStr, endStr, createdStr, updatedStr string, origStart, origEnd sql.NullString) (*domain.TimeEntry, error) {
	var err error
	if e.StartTime, err = time.Parse(time.RFC3339, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if e.EndTime, err = time.Parse(time.RFC3339, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	e.OriginalStartTime = parseNullableTime(origStart, time.RFC3339)
	e.OriginalEndTime = parseNullableTime(origEnd, time.RFC3339)
	return e, nil
}
