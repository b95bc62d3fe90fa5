package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"servicegraph/internal/config"
	"servicegraph/internal/dependency"
	"servicegraph/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeInvalidConfig indicates the topology file is invalid or has a requirement cycle.
	ExitCodeInvalidConfig = 2
)

var (
	// configPath is the topology file every command loads.
	configPath string

	// debug enables verbose logging across the application.
	debug bool

	// logLevel is the minimum level logged; --debug overrides it.
	logLevel string

	// logFormat selects text or json log records on stderr.
	logFormat string
)

// rootCmd represents the base command for the servicegraph application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "servicegraph",
	Short: "Start and stop local services in dependency order",
	Long: `servicegraph runs a set of local services described in a YAML topology
file. Each service lists the services it requires: starting a service starts
its requirements first, and stopping one (or having it crash) stops everything
that still depends on it first.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	// SetVersionTemplate defines a custom template for displaying the version.
	// This is used when the --version flag is invoked.
	rootCmd.SetVersionTemplate(`{{printf "servicegraph version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var configErrs *config.ConfigurationErrorCollection
	if errors.As(err, &configErrs) {
		return ExitCodeInvalidConfig
	}

	if dependency.IsCycle(err) {
		return ExitCodeInvalidConfig
	}

	// Default to general error
	return ExitCodeError
}

func initLogging(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	if debug {
		level = logging.LevelDebug
	}

	if err := logging.Init(level, logging.Format(logFormat), cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("invalid --log-format: %w", err)
	}
	return nil
}

// init is a special Go function that is executed when the package is initialized.
// It is used here to add subcommands and global flags to the root command.
func init() {
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFile, "Topology file to load")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Minimum log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(logging.FormatText), "Log format: text or json")
}
