package formatting

import (
	"fmt"
	"strings"
)

// ConsoleFormatter prints plain text suitable for scripts: one service per line.
type ConsoleFormatter struct {
	options Options
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(options Options) Formatter {
	return &ConsoleFormatter{
		options: options,
	}
}

// FormatServiceList prints "name -> requirements" lines
func (f *ConsoleFormatter) FormatServiceList(services []ServiceInfo) string {
	var b strings.Builder
	for _, svc := range services {
		if len(svc.Requires) == 0 {
			fmt.Fprintln(&b, svc.Name)
			continue
		}
		fmt.Fprintf(&b, "%s -> %s\n", svc.Name, strings.Join(svc.Requires, ", "))
	}
	return b.String()
}

// FormatPlan prints the plan order, one name per line
func (f *ConsoleFormatter) FormatPlan(plan Plan) string {
	if len(plan.Order) == 0 {
		return ""
	}
	return strings.Join(plan.Order, "\n") + "\n"
}

// SetOptions updates the formatter options
func (f *ConsoleFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *ConsoleFormatter) GetOptions() Options {
	return f.options
}
