package cli

import (
	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Timers  service.TimerService
	Entries service.EntryService
	Teams   service.TeamService
	Reports service.ReportService
	Admin   service.AdminService

	// EmployeeID is the configured identity entries default to.
	EmployeeID string
}

// NewRootCmd creates the top-level "tally" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tally",
		Short:         "Track time against tasks, report hours, and watch project budgets",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newStartCmd(app),
		newStopCmd(app),
		newStatusCmd(app),
		newEntryCmd(app),
		newReportCmd(app),
		newBudgetCmd(app),
		newTeamCmd(app),
		newEmployeeCmd(app),
		newProjectCmd(app),
	)

	return root
}
