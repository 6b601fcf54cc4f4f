// Command todoctl works on the same task store as the API server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"todo-presets-backend/internal/analytics"
	"todo-presets-backend/internal/app"
	"todo-presets-backend/internal/config"
)

var Version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "todoctl",
		Short:         "Manage todo.txt tasks and presets",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(cleanupCmd())
	rootCmd.AddCommand(injectCmd())
	rootCmd.AddCommand(projectsCmd())
	rootCmd.AddCommand(presetsCmd())
	rootCmd.AddCommand(eventsCmd())

	return rootCmd
}

// withApp opens the configured store for the duration of fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func logEvent(ctx context.Context, a *app.App, name string, props map[string]any) {
	if err := analytics.Log(ctx, a.DB, analytics.CLI, name, props, ""); err != nil {
		log.Printf("[WARN] activity log failed event=%s: %v", name, err)
	}
}
