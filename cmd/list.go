package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listOutput  string
	listNoColor bool
)

// listCmd prints the services of the topology file and how they depend on each other.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List services with their requirements and dependents",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	formatter, err := newFormatter(listOutput, listNoColor)
	if err != nil {
		return err
	}

	application, err := loadApplication(false)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatServiceList(application.Services().Describe()))
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format: table, console, json or yaml")
	listCmd.Flags().BoolVar(&listNoColor, "no-color", false, "Disable colored output")
}
