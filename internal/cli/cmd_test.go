package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallyhq/tally/internal/repository"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/testutil"
	"github.com/tallyhq/tally/internal/timer"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	entries := repository.NewSQLiteTimeEntryRepo(database)
	employees := repository.NewSQLiteEmployeeRepo(database)
	projects := repository.NewSQLiteProjectRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	teams := repository.NewSQLiteTeamRepo(database)
	uow := testutil.NewTestUoW(database)

	return &App{
		Timers:     service.NewTimerService(timer.NewController(timer.SystemClock{}), entries, tasks, nil),
		Entries:    service.NewEntryService(entries, tasks, nil),
		Teams:      service.NewTeamService(teams, entries, nil),
		Reports:    service.NewReportService(entries, employees, projects),
		Admin:      service.NewAdminService(uow, projects, tasks, employees, teams, nil),
		EmployeeID: "emp-test",
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// seedProject creates a project with one task via the CLI services.
func seedProject(t *testing.T, app *App, budget float64) (projectID, taskID string) {
	t.Helper()
	ctx := context.Background()

	p := testutil.NewProject("CLI Test Project", budget)
	require.NoError(t, app.Admin.CreateProject(ctx, p, []string{"Install"}))
	tasks, err := app.Admin.ListTasks(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	return p.ID, tasks[0].ID
}

func TestEntryLogAndListCmd(t *testing.T) {
	app := testApp(t)
	_, taskID := seedProject(t, app, 0)

	out, err := executeCmd(t, app,
		"entry", "log",
		"--task", taskID,
		"--date", "2024-01-08",
		"--start", "09:00",
		"--end", "12:30",
		"--note", "onsite install")
	require.NoError(t, err)
	assert.Contains(t, out, "3h 30m")
	assert.Contains(t, out, "2024-01-08")

	out, err = executeCmd(t, app, "entry", "list", "--task", taskID)
	require.NoError(t, err)
	assert.Contains(t, out, "onsite install")
	assert.Contains(t, out, "1 entries")
}

func TestEntryLogCmd_CrossMidnight(t *testing.T) {
	app := testApp(t)
	_, taskID := seedProject(t, app, 0)

	out, err := executeCmd(t, app,
		"entry", "log",
		"--task", taskID,
		"--date", "2024-01-08",
		"--start", "22:30",
		"--end", "01:15")
	require.NoError(t, err)
	assert.Contains(t, out, "2h 45m")
	assert.Contains(t, out, "2024-01-08", "work date stays on the start day")
}

func TestEntryEditCmd_ShowsOriginals(t *testing.T) {
	app := testApp(t)
	_, taskID := seedProject(t, app, 0)

	entry, err := app.Entries.Log(context.Background(), service.LogRequest{
		TaskID:    taskID,
		StartTime: time.Date(2024, 1, 8, 9, 0, 0, 0, time.Local),
		EndTime:   time.Date(2024, 1, 8, 10, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)

	out, err := executeCmd(t, app,
		"entry", "edit", entry.ID, "--start", "09:30", "--end", "11:30")
	require.NoError(t, err)
	assert.Contains(t, out, "2h 0m")
	assert.Contains(t, out, "Originally")
	assert.Contains(t, out, "09:00")
}

func TestEntryListCmd_Empty(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "entry", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No entries found.")
}

func TestReportWeekCmd(t *testing.T) {
	app := testApp(t)
	_, taskID := seedProject(t, app, 0)

	_, err := app.Entries.Log(context.Background(), service.LogRequest{
		TaskID:    taskID,
		StartTime: time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local),
		EndTime:   time.Date(2024, 1, 10, 15, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)

	out, err := executeCmd(t, app, "report", "week", "--anchor", "2024-01-10")
	require.NoError(t, err)
	assert.Contains(t, out, "WEEK")
	assert.Contains(t, out, "6h")
	assert.Contains(t, out, "1 active days")
}

func TestBudgetCmd(t *testing.T) {
	app := testApp(t)
	projectID, taskID := seedProject(t, app, 4000)
	ctx := context.Background()

	emp := testutil.NewEmployee("Asha")
	require.NoError(t, app.Admin.AddEmployee(ctx, emp))

	_, err := app.Entries.Log(ctx, service.LogRequest{
		TaskID:     taskID,
		EmployeeID: emp.ID,
		StartTime:  time.Date(2024, 1, 8, 8, 0, 0, 0, time.Local),
		EndTime:    time.Date(2024, 1, 8, 18, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)

	out, err := executeCmd(t, app, "budget", projectID)
	require.NoError(t, err)
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "$2500.00")
	assert.Contains(t, out, "62.5%")
	assert.Contains(t, out, "WITHIN BUDGET")
}

func TestTeamCmd_FallsBackToEntries(t *testing.T) {
	app := testApp(t)
	projectID, taskID := seedProject(t, app, 0)

	_, err := app.Entries.Log(context.Background(), service.LogRequest{
		TaskID:     taskID,
		EmployeeID: "emp-ghost",
		StartTime:  time.Date(2024, 1, 8, 9, 0, 0, 0, time.Local),
		EndTime:    time.Date(2024, 1, 8, 11, 0, 0, 0, time.Local),
	})
	require.NoError(t, err)

	out, err := executeCmd(t, app, "team", projectID)
	require.NoError(t, err)
	assert.Contains(t, out, "Employee emp-ghos")
	assert.Contains(t, out, "2h 0m")
}

func TestEmployeeAddAndListCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "employee", "add", "--name", "Asha", "--salary", "48000")
	require.NoError(t, err)
	assert.Contains(t, out, "$250.00/h")

	out, err = executeCmd(t, app, "employee", "add", "--name", "Bruno", "--rate", "90")
	require.NoError(t, err)
	assert.Contains(t, out, "$90.00/h")

	out, err = executeCmd(t, app, "employee", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "Bruno")
	assert.Contains(t, out, "(from salary)")
}

func TestProjectAddCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "add",
		"--name", "Rollout", "--budget", "10000",
		"--task", "Survey", "--task", "Install")
	require.NoError(t, err)
	assert.Contains(t, out, "Rollout")
	assert.Contains(t, out, "2 tasks")

	out, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Rollout")
	assert.Contains(t, out, "$10000.00")
}

func TestStatusCmd_NoTimer(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "status", "task-x")
	require.NoError(t, err)
	assert.Contains(t, out, "No timer")
}

func TestStopCmd_NoRunningTimer(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "stop", "task-x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no running timer")
}
