package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/aggregate"
	"github.com/tallyhq/tally/internal/cli/formatter"
	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/repository"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show tracked-hours reports",
	}

	cmd.AddCommand(
		newReportWeekCmd(app),
		newReportMonthCmd(app),
	)

	return cmd
}

func reportFilterFlags(cmd *cobra.Command, taskID, employeeID, projectID, anchor *string) {
	cmd.Flags().StringVar(taskID, "task", "", "Filter by task ID")
	cmd.Flags().StringVar(employeeID, "employee", "", "Filter by employee ID")
	cmd.Flags().StringVar(projectID, "project", "", "Filter by project ID")
	cmd.Flags().StringVar(anchor, "anchor", "", "Any date inside the period (YYYY-MM-DD, default today)")
}

func parseAnchor(anchor string) (time.Time, error) {
	if anchor == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation(domain.DateLayout, anchor, time.Local)
}

func newReportWeekCmd(app *App) *cobra.Command {
	var taskID, employeeID, projectID, anchor string
	var workdays bool

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Hours per day for one week",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseAnchor(anchor)
			if err != nil {
				return err
			}
			f := repository.EntryFilter{TaskID: taskID, EmployeeID: employeeID, ProjectID: projectID}

			var sum aggregate.Summary
			if workdays {
				sum, err = app.Reports.DashboardWeek(context.Background(), f, at)
			} else {
				sum, err = app.Reports.WeekSummary(context.Background(), f, at)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("week "+formatter.WeekRangeLabel(aggregate.WeekStart(at))))
			fmt.Fprint(out, formatter.RenderBarChart(sum.Buckets))
			fmt.Fprintln(out, formatter.SummaryLine(sum))
			return nil
		},
	}

	reportFilterFlags(cmd, &taskID, &employeeID, &projectID, &anchor)
	cmd.Flags().BoolVar(&workdays, "workdays", false, "Blank out weekend days")

	return cmd
}

func newReportMonthCmd(app *App) *cobra.Command {
	var taskID, employeeID, projectID, anchor string
	var byWeek bool

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Hours per day or per week for one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseAnchor(anchor)
			if err != nil {
				return err
			}
			f := repository.EntryFilter{TaskID: taskID, EmployeeID: employeeID, ProjectID: projectID}
			ctx := context.Background()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, formatter.Header("month "+at.Format("January 2006")))

			if byWeek {
				weeks, err := app.Reports.MonthWeeks(ctx, f, at)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.RenderBarChart(weeks))
				return nil
			}

			sum, err := app.Reports.MonthSummary(ctx, f, at)
			if err != nil {
				return err
			}

			// Day-per-row bars are too tall for a month; show active days only.
			active := make([]aggregate.Bucket, 0, len(sum.Buckets))
			for _, b := range sum.Buckets {
				if b.EntryCount > 0 {
					active = append(active, b)
				}
			}
			if len(active) == 0 {
				fmt.Fprintln(out, "No entries this month.")
				return nil
			}
			fmt.Fprint(out, formatter.RenderBarChart(active))
			fmt.Fprintln(out, formatter.SummaryLine(sum))
			return nil
		},
	}

	reportFilterFlags(cmd, &taskID, &employeeID, &projectID, &anchor)
	cmd.Flags().BoolVar(&byWeek, "weeks", false, "Bucket by week instead of day")

	return cmd
}
