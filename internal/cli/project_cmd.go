package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tallyhq/tally/internal/cli/formatter"
	"github.com/tallyhq/tally/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects and tasks",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newTaskListCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, clientID string
	var budget float64
	var tasks []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project with its initial tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{Name: name, ClientID: clientID, Budget: budget}
			if err := app.Admin.CreateProject(context.Background(), p, tasks); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s) with %d tasks\n",
				p.Name, formatter.TruncID(p.ID), len(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&clientID, "client", "", "Client ID")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Project budget")
	cmd.Flags().StringArrayVar(&tasks, "task", nil, "Initial task name (repeatable)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Admin.ListProjects(context.Background())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects yet.")
				return nil
			}

			headers := []string{"ID", "NAME", "BUDGET"}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				budget := formatter.Dim("none")
				if p.Budget > 0 {
					budget = formatter.Money(p.Budget)
				}
				rows = append(rows, []string{formatter.TruncID(p.ID), p.Name, budget})
			}
			fmt.Fprint(out, formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks <project-id>",
		Short: "List a project's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Admin.ListTasks(context.Background(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks for this project.")
				return nil
			}

			headers := []string{"ID", "NAME"}
			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				rows = append(rows, []string{formatter.TruncID(t.ID), t.Name})
			}
			fmt.Fprint(out, formatter.RenderTable(headers, rows))
			return nil
		},
	}
}
