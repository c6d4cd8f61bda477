package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/cli/formatter"
	"github.com/tallyhq/tally/internal/domain"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team <project-id>",
		Short: "Show who works on a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := app.Teams.ResolveTeam(context.Background(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(team) == 0 {
				fmt.Fprintln(out, "No team members found.")
				return nil
			}

			headers := []string{"EMPLOYEE", "TRACKED", "COST", "SOURCE"}
			rows := make([][]string, 0, len(team))
			for _, m := range team {
				cost := ""
				if m.TotalCost > 0 {
					cost = formatter.Money(m.TotalCost)
				}
				rows = append(rows, []string{
					m.Name,
					domain.FormatDuration(m.TotalMinutes),
					cost,
					formatter.SourceBadge(m.Source),
				})
			}
			fmt.Fprint(out, formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.AddCommand(newTeamAddCmd(app))

	return cmd
}

func newTeamAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <project-id> <employee-id>",
		Short: "Add an employee to a project's roster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Admin.AddMember(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Member added.")
			return nil
		},
	}
}
