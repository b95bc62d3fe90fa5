package app

import (
	"fmt"

	"servicegraph/internal/config"
	"servicegraph/pkg/logging"
)

// Application represents the main application structure that bootstraps and
// runs servicegraph.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: load the topology file and build the dependency graph
//  2. Execution phase: start the targets and supervise them until shutdown
//
// Commands that only inspect the graph (validate, plan, list) stop after the
// first phase.
//
// Example usage:
//
//	cfg := app.NewConfig("servicegraph.yaml", true)
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx, nil)
type Application struct {
	config   *Config
	services *Services

	// test hooks, called on the run loop goroutine
	onStarted      func()
	onCrashHandled func(name string)
}

// NewApplication loads cfg.ConfigPath and builds the services and graph
// described there. Nothing is started.
func NewApplication(cfg *Config) (*Application, error) {
	topology, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration from %s", cfg.ConfigPath)
		return nil, fmt.Errorf("failed to load configuration from %s: %w", cfg.ConfigPath, err)
	}

	return newApplication(cfg, topology)
}

func newApplication(cfg *Config, topology config.Config) (*Application, error) {
	svcs, err := InitializeServices(topology)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: svcs,
	}, nil
}

// Services returns the services built from the configuration.
func (a *Application) Services() *Services {
	return a.services
}
