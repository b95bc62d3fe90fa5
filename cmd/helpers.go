package cmd

import (
	"fmt"

	"servicegraph/internal/app"
	"servicegraph/internal/formatting"
)

// loadApplication bootstraps the application from the --config file.
func loadApplication(watch bool) (*app.Application, error) {
	application, err := app.NewApplication(app.NewConfig(configPath, watch))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

// newFormatter builds the formatter selected by -o.
func newFormatter(output string, noColor bool) (formatting.Formatter, error) {
	format, err := formatting.ParseOutputFormat(output)
	if err != nil {
		return nil, err
	}
	return formatting.NewFactory().CreateFormatter(formatting.Options{
		Format: format,
		Color:  !noColor,
	}), nil
}
