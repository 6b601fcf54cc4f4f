package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"todo-presets-backend/internal/app"
	"todo-presets-backend/internal/todo"
)

func presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List or load presets",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List presets and their tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				out := cmd.OutOrStdout()
				a.WS.View(func(_ *todo.TaskList, b *todo.PresetBook) {
					for _, p := range b.Presets() {
						fmt.Fprintf(out, "%s (%d)\n", p.Name(), p.Len())
						for _, pt := range p.Tasks() {
							fmt.Fprintf(out, "  %s\n", todo.Encode(todo.Task{Priority: pt.Priority, Description: pt.Description}))
						}
					}
				})
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "load [file]",
		Short: "Create the presets of a YAML file that do not exist yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				n, err := a.LoadPresets(ctx, args[0])
				if err != nil {
					return err
				}
				if n > 0 {
					logEvent(ctx, a, "preset_created", map[string]any{"count": n, "source": "file"})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %d presets\n", n)
				return nil
			})
		},
	})

	return cmd
}

func injectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inject [preset]",
		Short: "Add one new task per preset task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				ids, err := a.WS.Inject(ctx, args[0])
				if errors.Is(err, todo.ErrNotFound) {
					var names []string
					a.WS.View(func(_ *todo.TaskList, b *todo.PresetBook) { names = b.Names() })
					return fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
				}
				if err != nil {
					return err
				}
				logEvent(ctx, a, "preset_injected", map[string]any{"tasks": len(ids)})
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			})
		},
	}
}
