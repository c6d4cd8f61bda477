package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/cli/formatter"
)

func newBudgetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "budget <project-id>",
		Short: "Show project budget utilization and per-employee cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Reports.BudgetRollup(context.Background(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := report.Rollup

			fmt.Fprintln(out, formatter.Header(report.Project.Name))
			fmt.Fprintf(out, "%s %s\n", formatter.RenderBudgetBar(r, 30), formatter.BudgetIndicator(r.OverBudget))
			fmt.Fprintf(out, "Spent %s of %s · %s remaining\n\n",
				formatter.Money(r.TotalSpent),
				formatter.Money(report.Project.Budget),
				formatter.Money(r.Remaining))

			if len(r.PerEmployee) == 0 {
				fmt.Fprintln(out, "No tracked time yet.")
				return nil
			}

			headers := []string{"EMPLOYEE", "HOURS", "RATE", "COST", "SHARE"}
			rows := make([][]string, 0, len(r.PerEmployee))
			for _, line := range r.PerEmployee {
				rows = append(rows, []string{
					line.Name,
					formatter.Hours(line.TotalHours),
					formatter.Money(line.HourlyRate),
					formatter.Money(line.TotalCost),
					fmt.Sprintf("%.1f%%", line.CostPercent),
				})
			}
			fmt.Fprint(out, formatter.RenderTable(headers, rows))
			return nil
		},
	}
}
