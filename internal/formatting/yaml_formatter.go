package formatting

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) Formatter {
	return &YAMLFormatter{
		options: options,
	}
}

// FormatServiceList formats the services as a YAML sequence
func (f *YAMLFormatter) FormatServiceList(services []ServiceInfo) string {
	if services == nil {
		services = []ServiceInfo{}
	}
	return f.marshal(services)
}

// FormatPlan formats a plan as a YAML document
func (f *YAMLFormatter) FormatPlan(plan Plan) string {
	if plan.Order == nil {
		plan.Order = []string{}
	}
	return f.marshal(plan)
}

// SetOptions updates the formatter options
func (f *YAMLFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *YAMLFormatter) GetOptions() Options {
	return f.options
}

// marshal converts data to YAML string
func (f *YAMLFormatter) marshal(data interface{}) string {
	yamlBytes, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Sprintf("error: \"Failed to format YAML: %v\"\n", err)
	}

	return string(yamlBytes)
}
