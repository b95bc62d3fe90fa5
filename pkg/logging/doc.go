// Package logging provides structured logging for servicegraph.
//
// The package wraps Go's standard slog package behind a small set of
// subsystem-scoped helpers, so every record carries the component that
// emitted it.
//
// # Log Levels
//
//   - **Debug**: traversal details, crash handler wiring, state changes
//   - **Info**: services starting and stopping, child process output
//   - **Warn**: crashes, config changes that need a restart
//   - **Error**: failed starts and stops
//
// # Initialization
//
//	level, err := logging.ParseLevel("debug")
//	if err != nil {
//	    return err
//	}
//	if err := logging.Init(level, logging.FormatJSON, os.Stderr); err != nil {
//	    return err
//	}
//
//	logging.Info("Bootstrap", "Loaded %d services", n)
//	logging.Error("Orchestrator", err, "Failed to start %s", name)
//
// InitForCLI is shorthand for text output. Before any initialization records
// go to slog's default logger.
//
// # Subsystems
//
//   - **Bootstrap**: config to graph wiring
//   - **ConfigLoader**: loading and validating servicegraph.yaml
//   - **ConfigWatcher**: config file change notifications
//   - **Orchestrator**: start and stop cascades
//   - **Service**: service state changes and crash reports
//   - **App**: the run loop
//
// # Process Output
//
// Writer returns an io.Writer that turns each line written to it into an Info
// record. ProcessService uses it for child stdout and stderr.
package logging
