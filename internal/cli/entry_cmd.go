package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/cli/formatter"
	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/repository"
	"github.com/tallyhq/tally/internal/service"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage time entries",
	}

	cmd.AddCommand(
		newEntryLogCmd(app),
		newEntryListCmd(app),
		newEntryEditCmd(app),
		newEntryRemoveCmd(app),
	)

	return cmd
}

func newEntryLogCmd(app *App) *cobra.Command {
	var taskID, employeeID, date, startStr, endStr, note string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a time entry manually",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOptionalDate(date); err != nil {
				return err
			}
			start, err := parseClock(date, startStr)
			if err != nil {
				return fmt.Errorf("start: %w", err)
			}
			end, err := parseClock(date, endStr)
			if err != nil {
				return fmt.Errorf("end: %w", err)
			}
			// An end at or before the start means the shift ran past midnight.
			if !end.After(start) {
				end = end.Add(24 * time.Hour)
			}

			emp := employeeID
			if emp == "" {
				emp = app.EmployeeID
			}

			entry, err := app.Entries.Log(context.Background(), service.LogRequest{
				TaskID:      taskID,
				EmployeeID:  emp,
				WorkDate:    date,
				StartTime:   start,
				EndTime:     end,
				Description: note,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s (%s)\n",
				domain.FormatDuration(entry.DurationMinutes),
				entry.WorkDate,
				formatter.TimeRange(entry.StartTime, entry.EndTime))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Task ID")
	cmd.Flags().StringVar(&employeeID, "employee", "", "Employee ID")
	cmd.Flags().StringVar(&date, "date", "", "Work date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&startStr, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&endStr, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&note, "note", "", "Description")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newEntryListCmd(app *App) *cobra.Command {
	var taskID, employeeID, projectID, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range []string{from, to} {
				if err := validateOptionalDate(d); err != nil {
					return err
				}
			}

			entries, err := app.Entries.List(context.Background(), repository.EntryFilter{
				TaskID:     taskID,
				EmployeeID: employeeID,
				ProjectID:  projectID,
				StartDate:  from,
				EndDate:    to,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries found.")
				return nil
			}

			headers := []string{"ID", "DATE", "TASK", "TIME", "DURATION", "", "NOTE"}
			rows := make([][]string, 0, len(entries))
			var total int
			for _, e := range entries {
				note := e.Description
				if len(note) > 40 {
					note = note[:37] + "..."
				}
				rows = append(rows, []string{
					formatter.TruncID(e.ID),
					e.WorkDate,
					formatter.TruncID(e.TaskID),
					formatter.TimeRange(e.StartTime, e.EndTime),
					domain.FormatDuration(e.DurationMinutes),
					formatter.EditedMark(e.Edited()),
					note,
				})
				total += e.DurationMinutes
			}

			fmt.Fprint(out, formatter.RenderTable(headers, rows))
			fmt.Fprintf(out, "\n%d entries · %s total\n", len(entries), domain.FormatDuration(total))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Filter by task ID")
	cmd.Flags().StringVar(&employeeID, "employee", "", "Filter by employee ID")
	cmd.Flags().StringVar(&projectID, "project", "", "Filter by project ID")
	cmd.Flags().StringVar(&from, "from", "", "Earliest work date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Latest work date (YYYY-MM-DD)")

	return cmd
}

func newEntryEditCmd(app *App) *cobra.Command {
	var startStr, endStr string

	cmd := &cobra.Command{
		Use:   "edit <entry-id>",
		Short: "Change an entry's times, keeping the originals for audit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			ctx := context.Background()

			current, err := app.Entries.Get(ctx, id)
			if err != nil {
				return err
			}

			// Without flags, collect the new times interactively.
			if startStr == "" && endStr == "" {
				startStr = formatter.ClockTime(current.StartTime)
				endStr = formatter.ClockTime(current.EndTime)
				if err := editTimesForm(&startStr, &endStr).Run(); err != nil {
					return err
				}
			}
			if startStr == "" {
				startStr = formatter.ClockTime(current.StartTime)
			}
			if endStr == "" {
				endStr = formatter.ClockTime(current.EndTime)
			}

			// New clock times are applied on the entry's existing start date.
			baseDate := domain.DateOf(current.StartTime)
			newStart, err := parseClock(baseDate, startStr)
			if err != nil {
				return fmt.Errorf("start: %w", err)
			}
			newEnd, err := parseClock(baseDate, endStr)
			if err != nil {
				return fmt.Errorf("end: %w", err)
			}
			if !newEnd.After(newStart) {
				newEnd = newEnd.Add(24 * time.Hour)
			}

			updated, err := app.Entries.Edit(ctx, current.ID, newStart, newEnd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Updated to %s (%s)\n",
				domain.FormatDuration(updated.DurationMinutes),
				formatter.TimeRange(updated.StartTime, updated.EndTime))
			if updated.OriginalStartTime != nil && updated.OriginalEndTime != nil {
				fmt.Fprintf(out, "Originally %s\n",
					formatter.Dim(formatter.TimeRange(*updated.OriginalStartTime, *updated.OriginalEndTime)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "New start time (HH:MM)")
	cmd.Flags().StringVar(&endStr, "end", "", "New end time (HH:MM)")

	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Entries.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Entry removed.")
			return nil
		},
	}
}

// parseClock combines a YYYY-MM-DD date (empty means today) with an HH:MM
// clock time in the local timezone.
func parseClock(date, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("use HH:MM format")
	}

	day := time.Now()
	if date != "" {
		day, err = time.ParseInLocation(domain.DateLayout, date, time.Local)
		if err != nil {
			return time.Time{}, err
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
