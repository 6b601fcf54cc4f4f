package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"todo-presets-backend/internal/analytics"
	"todo-presets-backend/internal/app"
	"todo-presets-backend/internal/todo"
)

func exportCmd() *cobra.Command {
	var (
		project  string
		lossless bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print tasks as todo.txt lines in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				var list []todo.Task
				a.WS.View(func(l *todo.TaskList, _ *todo.PresetBook) {
					if cmd.Flags().Changed("project") {
						list = l.ListProject(project)
					} else {
						list = l.List()
					}
				})

				encode := todo.Encode
				if lossless {
					encode = todo.EncodeLossless
				}
				return todo.WriteLines(cmd.OutOrStdout(), list, encode)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Only tasks of this project (empty for none)")
	cmd.Flags().BoolVar(&lossless, "lossless", false, "Keep the priority of completed tasks")

	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Add the tasks of a todo.txt file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				var n int
				err := a.WS.UpdateTasks(ctx, func(l *todo.TaskList) error {
					var err error
					n, err = l.Import(in)
					return err
				})
				if err != nil {
					return err
				}
				logEvent(ctx, a, "tasks_imported", map[string]any{"imported": n})
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d tasks\n", n)
				return nil
			})
		},
	}
}

func cleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				var n int
				err := a.WS.UpdateTasks(ctx, func(l *todo.TaskList) error {
					n = l.Cleanup()
					return nil
				})
				if err != nil {
					return err
				}
				if n > 0 {
					logEvent(ctx, a, "tasks_cleaned_up", map[string]any{"removed": n})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d tasks\n", n)
				return nil
			})
		},
	}
}

func projectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List project names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				var names []string
				a.WS.View(func(l *todo.TaskList, _ *todo.PresetBook) {
					names = l.ProjectNames()
				})
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			})
		},
	}
}

func eventsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the latest activity events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				events, err := analytics.Recent(ctx, a.DB, limit)
				if err != nil {
					return err
				}
				for _, e := range events {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %-18s %-8s %s\n",
						e.Time.Format("2006-01-02 15:04:05"), e.Name, e.Platform, e.Properties)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum events")

	return cmd
}
