package domain

import "time"

// Project is a reference record entries roll up to for budgets and teams.
type Project struct {
	ID        string
	ClientID  string
	Name      string
	Budget    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Task belongs to a project; time entries are logged against tasks.
type Task struct {
	ID        string
	ProjectID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
