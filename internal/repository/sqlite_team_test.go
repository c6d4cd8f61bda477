package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/testutil"
)

type teamFixture struct {
	teams     *SQLiteTeamRepo
	entries   *SQLiteTimeEntryRepo
	employees *SQLiteEmployeeRepo
	projects  *SQLiteProjectRepo
}

func teamTestSetup(t *testing.T) *teamFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	return &teamFixture{
		teams:     NewSQLiteTeamRepo(db),
		entries:   NewSQLiteTimeEntryRepo(db),
		employees: NewSQLiteEmployeeRepo(db),
		projects:  NewSQLiteProjectRepo(db),
	}
}

func TestTeamRepo_Membership(t *testing.T) {
	f := teamTestSetup(t)
	ctx := context.Background()

	p := testutil.NewProject("Rollout", 10000)
	require.NoError(t, f.projects.Create(ctx, p))

	asha := testutil.NewEmployee("Asha")
	birk := testutil.NewEmployee("Birk")
	require.NoError(t, f.employees.Create(ctx, asha))
	require.NoError(t, f.employees.Create(ctx, birk))

	require.NoError(t, f.teams.AddMember(ctx, p.ID, asha.ID))
	require.NoError(t, f.teams.AddMember(ctx, p.ID, birk.ID))
	// Duplicate add is a no-op.
	require.NoError(t, f.teams.AddMember(ctx, p.ID, birk.ID))

	team, err := f.teams.GetProjectTeam(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, team, 2)
	assert.Equal(t, "Asha", team[0].Name)
	assert.Equal(t, domain.TeamSourceMembership, team[0].Source)
}

func TestTeamRepo_GetProjectTeam_Empty(t *testing.T) {
	f := teamTestSetup(t)
	team, err := f.teams.GetProjectTeam(context.Background(), "no-such-project")
	require.NoError(t, err)
	assert.Empty(t, team)
}

func TestTeamRepo_EmployeeStats(t *testing.T) {
	f := teamTestSetup(t)
	ctx := context.Background()

	asha := testutil.NewEmployee("Asha") // derived rate 250/h
	require.NoError(t, f.employees.Create(ctx, asha))

	mkEntry := func(emp string, minutes int) {
		e := testutil.NewEntry("t1", testutil.WithEmployee(emp), testutil.WithProject("p1"))
		e.DurationMinutes = minutes
		_, err := f.entries.Create(ctx, e)
		require.NoError(t, err)
	}
	mkEntry(asha.ID, 600) // 10h
	mkEntry(asha.ID, 120) // 2h
	mkEntry("ghost", 60)  // employee unknown to the directory

	stats, err := f.teams.GetEmployeeStats(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Ordered by minutes, largest first.
	assert.Equal(t, asha.ID, stats[0].EmployeeID)
	assert.Equal(t, 12.0, stats[0].Hours)
	assert.Equal(t, 3000.0, stats[0].Cost)

	assert.Equal(t, "ghost", stats[1].EmployeeID)
	assert.Equal(t, 1.0, stats[1].Hours)
	assert.Equal(t, 0.0, stats[1].Cost)
}

func TestTeamRepo_EmployeeStats_ScopedToProject(t *testing.T) {
	f := teamTestSetup(t)
	ctx := context.Background()

	e1 := testutil.NewEntry("t1", testutil.WithEmployee("e1"), testutil.WithProject("p1"))
	e2 := testutil.NewEntry("t2", testutil.WithEmployee("e1"), testutil.WithProject("p2"))
	_, err := f.entries.Create(ctx, e1)
	require.NoError(t, err)
	_, err = f.entries.Create(ctx, e2)
	require.NoError(t, err)

	stats, err := f.teams.GetEmployeeStats(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1.0, stats[0].Hours)
}
