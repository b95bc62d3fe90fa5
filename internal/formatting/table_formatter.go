package formatting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	textutil "servicegraph/pkg/strings"
)

// maxCommandWidth truncates long command lines in the service table.
const maxCommandWidth = 60

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	return &TableFormatter{
		options: options,
	}
}

// FormatServiceList formats the services of the graph as a table
func (f *TableFormatter) FormatServiceList(services []ServiceInfo) string {
	if len(services) == 0 {
		return f.formatEmptyMessage("📋", "No services configured")
	}

	t := f.createTable()
	t.AppendHeader(table.Row{
		f.header("NAME"),
		f.header("KIND"),
		f.header("REQUIRES"),
		f.header("REQUIRED BY"),
		f.header("COMMAND"),
	})

	for _, svc := range services {
		t.AppendRow(table.Row{
			f.colorize(text.FgHiCyan, svc.Name),
			svc.Kind,
			joinOrDash(svc.Requires),
			joinOrDash(svc.RequiredBy),
			textutil.Cell(svc.Command, maxCommandWidth),
		})
	}

	return t.Render() + "\n" + f.formatTotal(len(services), "services")
}

// FormatPlan formats a start or stop plan as a numbered table
func (f *TableFormatter) FormatPlan(plan Plan) string {
	if len(plan.Order) == 0 {
		return f.formatEmptyMessage("✅", fmt.Sprintf("Nothing to %s for %s", plan.Action, plan.Target))
	}

	t := f.createTable()
	t.SetTitle("%s %s", capitalize(plan.Action), plan.Target)
	t.AppendHeader(table.Row{f.header("#"), f.header("SERVICE")})

	for i, name := range plan.Order {
		cell := name
		if name == plan.Target {
			cell = f.colorize(text.Bold, name)
		}
		t.AppendRow(table.Row{strconv.Itoa(i + 1), cell})
	}

	return t.Render() + "\n"
}

// SetOptions updates the formatter options
func (f *TableFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *TableFormatter) GetOptions() Options {
	return f.options
}

// Helper methods

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) header(s string) string {
	return f.colorize(text.FgHiCyan, s)
}

func (f *TableFormatter) colorize(color text.Color, s string) string {
	if !f.options.Color {
		return s
	}
	return color.Sprint(s)
}

// formatEmptyMessage formats empty result messages
func (f *TableFormatter) formatEmptyMessage(icon, message string) string {
	return fmt.Sprintf("%s %s\n", f.colorize(text.FgYellow, icon), f.colorize(text.FgYellow, message))
}

func (f *TableFormatter) formatTotal(n int, noun string) string {
	return fmt.Sprintf("%s %s %s\n",
		f.colorize(text.FgHiBlue, "Total:"),
		f.colorize(text.FgHiWhite, strconv.Itoa(n)),
		f.colorize(text.FgHiBlue, noun))
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
