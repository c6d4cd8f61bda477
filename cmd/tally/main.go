package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/db"
	"github.com/tallyhq/tally/internal/repository"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/timer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("TALLY_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// Environment overrides sit on top of the config file.
	if v := os.Getenv("TALLY_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TALLY_REMOTE"); v != "" {
		cfg.RemoteURL = v
	}
	if v := os.Getenv("TALLY_EMPLOYEE"); v != "" {
		cfg.EmployeeID = v
	}

	applyColorMode(cfg.Color)

	// Structured use-case logging is opt-in.
	var logWriter io.Writer
	if os.Getenv("TALLY_LOG") != "" {
		logWriter = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(logWriter)

	var (
		entries   repository.TimeEntryRepo
		employees repository.EmployeeRepo
		projects  repository.ProjectRepo
		tasks     repository.TaskRepo
		teams     repository.TeamRepo
		uow       db.UnitOfWork
	)

	if cfg.RemoteURL != "" {
		store := repository.NewRemoteStore(cfg.RemoteURL, nil)
		entries = store
		teams = store
		employees = repository.NewRemoteEmployeeRepo(store)
		projects = repository.NewRemoteProjectRepo(store)
		tasks = repository.NewRemoteTaskRepo(store)
	} else {
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		entries = repository.NewSQLiteTimeEntryRepo(database)
		employees = repository.NewSQLiteEmployeeRepo(database)
		projects = repository.NewSQLiteProjectRepo(database)
		tasks = repository.NewSQLiteTaskRepo(database)
		teams = repository.NewSQLiteTeamRepo(database)
		uow = db.NewSQLiteUnitOfWork(database)
	}

	app := &cli.App{
		Timers:     service.NewTimerService(timer.NewController(timer.SystemClock{}), entries, tasks, observer),
		Entries:    service.NewEntryService(entries, tasks, observer),
		Teams:      service.NewTeamService(teams, entries, observer),
		Reports:    service.NewReportService(entries, employees, projects),
		Admin:      service.NewAdminService(uow, projects, tasks, employees, teams, observer),
		EmployeeID: cfg.EmployeeID,
	}

	return cli.NewRootCmd(app).Execute()
}

// applyColorMode forces color on or off when configured. The env variables
// must be set before the first lipgloss style renders.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		os.Setenv("CLICOLOR_FORCE", "1")
	case "never":
		os.Setenv("NO_COLOR", "1")
	default:
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			os.Setenv("NO_COLOR", "1")
		}
	}
}
