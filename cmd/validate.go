package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"servicegraph/internal/config"
)

// validateCmd loads the topology file and builds the graph without starting anything.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the topology file for errors and requirement cycles",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	application, err := loadApplication(false)
	if err != nil {
		var configErrs *config.ConfigurationErrorCollection
		if errors.As(err, &configErrs) {
			fmt.Fprintln(cmd.ErrOrStderr(), configErrs.GetDetailedReport())
		}
		return err
	}

	svcs := application.Services()
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is valid: %d services, %d requirements\n",
		configPath, svcs.Graph.Len(), svcs.EdgeCount())
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
