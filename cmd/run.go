package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// runWatch enables the config file watcher while services run.
var runWatch bool

// runCmd starts services and supervises them until interrupted.
var runCmd = &cobra.Command{
	Use:   "run [service...]",
	Short: "Start services with their requirements and keep them running",
	Long: `Starts the named services, and everything they require, in dependency order.

Without arguments the config's targets are started; without targets, every
service is. servicegraph then stays in the foreground:

  - when a process exits on its own, every running service that requires it
    is stopped first, then the crashed service is marked stopped
  - on Ctrl+C or SIGTERM all running services are stopped, dependents first

A service that fails to start aborts the run; services started before it are
stopped again.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	application, err := loadApplication(runWatch)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return application.Run(ctx, args)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runWatch, "watch", true, "Warn when the config file changes while running")
}
