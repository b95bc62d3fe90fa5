// Package formatting renders servicegraph listings and plans for the CLI.
//
// The same data can be printed as a rich table, plain console text, JSON or
// YAML, selected with the -o flag.
package formatting

import "fmt"

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatConsole OutputFormat = "console" // Simple console output
	FormatJSON    OutputFormat = "json"    // JSON output
	FormatYAML    OutputFormat = "yaml"    // YAML output
	FormatTable   OutputFormat = "table"   // Rich table output
)

// ParseOutputFormat validates a user-supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatConsole, FormatJSON, FormatYAML, FormatTable:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, console, json or yaml)", s)
	}
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Color  bool // Enable colored output
}

// ServiceInfo describes one service of the graph.
type ServiceInfo struct {
	Name       string   `json:"name" yaml:"name"`
	Kind       string   `json:"kind" yaml:"kind"`
	Command    string   `json:"command,omitempty" yaml:"command,omitempty"`
	Requires   []string `json:"requires,omitempty" yaml:"requires,omitempty"`
	RequiredBy []string `json:"requiredBy,omitempty" yaml:"requiredBy,omitempty"`
}

// Plan is the ordered list of services an operation would touch.
type Plan struct {
	Action string   `json:"action" yaml:"action"` // start or stop
	Target string   `json:"target" yaml:"target"`
	Order  []string `json:"order" yaml:"order"`
}

// Formatter renders servicegraph data
type Formatter interface {
	FormatServiceList(services []ServiceInfo) string
	FormatPlan(plan Plan) string

	// Configuration
	SetOptions(options Options)
	GetOptions() Options
}

// Factory creates formatters for different output formats
type Factory interface {
	CreateFormatter(options Options) Formatter
}

// NewFactory creates a new formatter factory
func NewFactory() Factory {
	return &factory{}
}

// factory implements the Factory interface
type factory struct{}

// CreateFormatter creates the appropriate formatter based on options
func (f *factory) CreateFormatter(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	case FormatConsole:
		return NewConsoleFormatter(options)
	case FormatTable:
		fallthrough
	default:
		return NewTableFormatter(options)
	}
}
