package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/db"
	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/repository"
	"github.com/tallyhq/tally/internal/testutil"
)

// fakeClock advances only when told to, so session durations are exact.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)}
}

type repos struct {
	entries   *repository.SQLiteTimeEntryRepo
	employees *repository.SQLiteEmployeeRepo
	projects  *repository.SQLiteProjectRepo
	tasks     *repository.SQLiteTaskRepo
	teams     *repository.SQLiteTeamRepo
	uow       db.UnitOfWork
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repos{
		entries:   repository.NewSQLiteTimeEntryRepo(database),
		employees: repository.NewSQLiteEmployeeRepo(database),
		projects:  repository.NewSQLiteProjectRepo(database),
		tasks:     repository.NewSQLiteTaskRepo(database),
		teams:     repository.NewSQLiteTeamRepo(database),
		uow:       testutil.NewTestUoW(database),
	}
}

// seedProjectTask creates a project with one task and returns both.
func seedProjectTask(t *testing.T, r repos, budget float64) (*domain.Project, *domain.Task) {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewProject("Field Ops", budget)
	require.NoError(t, r.projects.Create(ctx, proj))
	task := testutil.NewTask(proj.ID, "Site visit")
	require.NoError(t, r.tasks.Create(ctx, task))
	return proj, task
}
