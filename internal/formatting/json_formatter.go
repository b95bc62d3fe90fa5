package formatting

// JSONFormatter provides JSON output formatting
type JSONFormatter struct {
	options Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) Formatter {
	return &JSONFormatter{
		options: options,
	}
}

// FormatServiceList formats the services as a JSON array
func (f *JSONFormatter) FormatServiceList(services []ServiceInfo) string {
	if services == nil {
		services = []ServiceInfo{}
	}
	return PrettyJSON(services) + "\n"
}

// FormatPlan formats a plan as a JSON object
func (f *JSONFormatter) FormatPlan(plan Plan) string {
	if plan.Order == nil {
		plan.Order = []string{}
	}
	return PrettyJSON(plan) + "\n"
}

// SetOptions updates the formatter options
func (f *JSONFormatter) SetOptions(options Options) {
	f.options = options
}

// GetOptions returns the current formatter options
func (f *JSONFormatter) GetOptions() Options {
	return f.options
}
