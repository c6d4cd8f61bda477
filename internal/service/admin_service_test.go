package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/repository"
	"github.com/tallyhq/tally/internal/testutil"
)

func TestAdminService_CreateProjectWithTasks(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	svc := NewAdminService(r.uow, r.projects, r.tasks, r.employees, r.teams, nil)

	proj := testutil.NewProject("Rollout", 10000)
	require.NoError(t, svc.CreateProject(ctx, proj, []string{"Survey", "Install", "Handover"}))

	stored, err := r.projects.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rollout", stored.Name)
	assert.Equal(t, 10000.0, stored.Budget)

	tasks, err := r.tasks.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)
}

func TestAdminService_CreateProjectRollsBackOnTaskFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)

	// First exec inserts the project, second inserts the first task.
	uow := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    errors.New("disk full"),
	}
	svc := NewAdminService(uow, projects, tasks, nil, nil, nil)

	ctx := context.Background()
	proj := testutil.NewProject("Rollout", 10000)
	err := svc.CreateProject(ctx, proj, []string{"Survey"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)

	_, err = projects.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "project insert must roll back with the task")
}

func TestAdminService_CreateProjectRequiresName(t *testing.T) {
	r := setupRepos(t)
	svc := NewAdminService(r.uow, r.projects, r.tasks, r.employees, r.teams, nil)

	err := svc.CreateProject(context.Background(), testutil.NewProject("", 0), nil)
	require.Error(t, err)
}

func TestAdminService_AddEmployeeAndList(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewAdminService(r.uow, r.projects, r.tasks, r.employees, r.teams, nil)

	require.NoError(t, svc.AddEmployee(ctx, testutil.NewEmployee("Asha")))
	require.NoError(t, svc.AddEmployee(ctx, testutil.NewEmployee("Bruno", testutil.WithHourlyRate(90))))

	employees, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, 2)
}

func TestAdminService_AddMemberChecksProject(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewAdminService(r.uow, r.projects, r.tasks, r.employees, r.teams, nil)

	err := svc.AddMember(ctx, "no-such-project", "emp-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	proj := testutil.NewProject("Rollout", 0)
	require.NoError(t, r.projects.Create(ctx, proj))
	emp := testutil.NewEmployee("Asha")
	require.NoError(t, r.employees.Create(ctx, emp))

	require.NoError(t, svc.AddMember(ctx, proj.ID, emp.ID))

	team, err := r.teams.GetProjectTeam(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, emp.ID, team[0].EmployeeID)
}
