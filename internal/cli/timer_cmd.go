package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/cli/formatter"
	"github.com/tallyhq/tally/internal/domain"
	"github.com/tallyhq/tally/internal/timer"
)

func newStartCmd(app *App) *cobra.Command {
	var employeeID string
	var watch bool

	cmd := &cobra.Command{
		Use:   "start <task-id>",
		Short: "Start the timer for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := args[0]
			emp := employeeID
			if emp == "" {
				emp = app.EmployeeID
			}

			sess, err := app.Timers.Start(context.Background(), taskID, emp)
			if err != nil {
				if errors.Is(err, timer.ErrInvalidTransition) {
					return fmt.Errorf("a timer for task %s is already active", taskID)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Timer started for task %s at %s\n",
				formatter.TruncID(sess.TaskID), formatter.ClockTime(sess.StartedAt))

			if watch {
				return runWatch(app, taskID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "Employee to attribute the session to")
	cmd.Flags().BoolVar(&watch, "watch", false, "Show a live elapsed-time view")

	return cmd
}

func newStopCmd(app *App) *cobra.Command {
	var discard bool

	cmd := &cobra.Command{
		Use:   "stop <task-id>",
		Short: "Stop the timer and save the entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := args[0]
			ctx := context.Background()
			out := cmd.OutOrStdout()

			_, err := app.Timers.Stop(ctx, taskID)
			switch {
			case err == nil:
			case errors.Is(err, timer.ErrMinimumDuration):
				if !discard {
					return fmt.Errorf("session under a minute; keep working or discard with --discard")
				}
				// The session is still running; drop it directly.
			case errors.Is(err, timer.ErrInvalidTransition):
				// A session whose save failed is already in stopped-pending-save,
				// so Stop rejects it. Fall through to retry the save or honor
				// --discard instead of reporting no timer.
				sess, ok := app.Timers.Session(taskID)
				if !ok || sess.State != timer.StateStopped {
					return fmt.Errorf("no running timer for task %s", taskID)
				}
			default:
				return err
			}

			if discard {
				app.Timers.Discard(taskID)
				fmt.Fprintln(out, "Session discarded.")
				return nil
			}

			entry, err := app.Timers.Save(ctx, taskID)
			if err != nil {
				// The pending session survives a failed save.
				return fmt.Errorf("saving entry (run stop again to retry): %w", err)
			}

			fmt.Fprintf(out, "Saved %s on %s (%s)\n",
				domain.FormatDuration(entry.DurationMinutes),
				entry.WorkDate,
				formatter.TimeRange(entry.StartTime, entry.EndTime))
			return nil
		},
	}

	cmd.Flags().BoolVar(&discard, "discard", false, "Drop the session instead of saving it")

	return cmd
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <task-id>",
		Short: "Show the timer state for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := args[0]
			out := cmd.OutOrStdout()

			sess, ok := app.Timers.Session(taskID)
			if !ok {
				fmt.Fprintf(out, "No timer for task %s\n", taskID)
				return nil
			}

			switch sess.State {
			case timer.StateRunning:
				fmt.Fprintf(out, "Running since %s (%s elapsed)\n",
					formatter.ClockTime(sess.StartedAt),
					formatter.Elapsed(app.Timers.Elapsed(taskID)))
			case timer.StateStopped:
				fmt.Fprintf(out, "Stopped, pending save: %s\n",
					domain.FormatDuration(sess.Pending.DurationMinutes))
			default:
				fmt.Fprintln(out, "Idle")
			}
			return nil
		},
	}
}

func runWatch(app *App, taskID string) error {
	model := newWatchModel(app, taskID)
	p := tea.NewProgram(model)
	_, err := p.Run()
	return err
}
