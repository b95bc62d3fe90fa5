package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"servicegraph/internal/config"
	"servicegraph/internal/dependency"
)

func TestSetVersion(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if GetVersion() != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, GetVersion())
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "servicegraph" {
		t.Errorf("Expected Use to be 'servicegraph', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
}

func TestPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	cfg := flags.Lookup("config")
	if cfg == nil {
		t.Fatal("Expected --config flag")
	}
	if cfg.Shorthand != "c" {
		t.Errorf("Expected --config shorthand 'c', got %q", cfg.Shorthand)
	}
	if cfg.DefValue != config.DefaultConfigFile {
		t.Errorf("Expected --config default %q, got %q", config.DefaultConfigFile, cfg.DefValue)
	}

	for _, name := range []string{"debug", "log-level", "log-format"} {
		if flags.Lookup(name) == nil {
			t.Errorf("Expected --%s flag", name)
		}
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "servicegraph version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	output := buf.String()
	expected := "servicegraph version 1.0.0\n"
	if output != expected {
		t.Errorf("Expected version output %q, got %q", expected, output)
	}
}

func TestSubcommands(t *testing.T) {
	commands := rootCmd.Commands()

	expectedCommands := []string{"version", "run", "validate", "plan", "list"}
	foundCommands := make(map[string]bool)

	for _, cmd := range commands {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestGetExitCode(t *testing.T) {
	configErrs := config.NewConfigurationErrorCollection()
	configErrs.Add(config.ConfigurationError{Message: "bad"})

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"generic", errors.New("boom"), ExitCodeError},
		{"config errors", fmt.Errorf("load: %w", configErrs), ExitCodeInvalidConfig},
		{"cycle", fmt.Errorf("build: %w", &dependency.CycleError[string]{Path: []string{"a", "a"}}), ExitCodeInvalidConfig},
		{"not found", fmt.Errorf("plan: %w", dependency.ErrNotFound), ExitCodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getExitCode(tt.err); got != tt.want {
				t.Errorf("getExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRootCommandHelp(t *testing.T) {
	out, err := executeCommand(t, "--help")
	if err != nil {
		t.Fatalf("Error executing help command: %v", err)
	}

	if !strings.Contains(out, "servicegraph") {
		t.Errorf("Help output should contain 'servicegraph'. Got: %q", out)
	}

	if !strings.Contains(out, "requires") {
		t.Errorf("Help output should contain the long description. Got: %q", out)
	}
}
