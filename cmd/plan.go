package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	planStop    bool
	planOutput  string
	planNoColor bool
)

// planCmd prints the order in which services would be started or stopped.
var planCmd = &cobra.Command{
	Use:   "plan <service>",
	Short: "Show the order services would be started (or stopped) in",
	Long: `Computes what 'run <service>' would start, in order, without starting anything.

With --stop the order is the stop cascade for the service: every service that
requires it, dependents first, then the service itself. The stop plan assumes
all services are running.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	formatter, err := newFormatter(planOutput, planNoColor)
	if err != nil {
		return err
	}

	application, err := loadApplication(false)
	if err != nil {
		return err
	}

	plan, err := application.Services().Plan(args[0], planStop)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(plan))
	return nil
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().BoolVar(&planStop, "stop", false, "Show the stop cascade instead of the start order")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "table", "Output format: table, console, json or yaml")
	planCmd.Flags().BoolVar(&planNoColor, "no-color", false, "Disable colored output")
}
