package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/aggregate"
	"github.com/tallyhq/tally/internal/cli/formatter"
	"github.com/tallyhq/tally/internal/domain"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage the employee directory",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(app),
		newEmployeeListCmd(app),
	)

	return cmd
}

func newEmployeeAddCmd(app *App) *cobra.Command {
	var name string
	var salary, rate float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.Employee{Name: name, MonthlySalary: salary}
			if cmd.Flags().Changed("rate") {
				e.HourlyRate = &rate
			}

			if err := app.Admin.AddEmployee(context.Background(), e); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) at %s/h\n",
				e.Name, formatter.TruncID(e.ID), formatter.Money(aggregate.HourlyRate(e)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Employee name")
	cmd.Flags().Float64Var(&salary, "salary", 0, "Monthly salary, used to derive the hourly rate")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Explicit hourly rate, overrides the salary-derived one")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Admin.ListEmployees(context.Background())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(employees) == 0 {
				fmt.Fprintln(out, "No employees yet.")
				return nil
			}

			headers := []string{"ID", "NAME", "RATE"}
			rows := make([][]string, 0, len(employees))
			for _, e := range employees {
				rateLabel := formatter.Money(aggregate.HourlyRate(e)) + "/h"
				if e.HourlyRate == nil {
					rateLabel += formatter.Dim(" (from salary)")
				}
				rows = append(rows, []string{
					formatter.TruncID(e.ID),
					e.Name,
					rateLabel,
				})
			}
			fmt.Fprint(out, formatter.RenderTable(headers, rows))
			return nil
		},
	}
}
