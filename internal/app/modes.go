package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"servicegraph/internal/services"
	"servicegraph/pkg/logging"
)

// crashReport is an unexpected process exit waiting to be handled.
type crashReport struct {
	proc  *services.ProcessService
	cause error
}

// Run starts the given services (see Services.Targets for the fallback when
// names is empty) with their requirements, and then supervises them until
// ctx is cancelled or SIGINT/SIGTERM arrives. On the way out every running
// service is stopped, dependents first.
//
// The controller is only ever touched by the run loop goroutine. Process
// exits are forwarded to it and handled there through ReportCrash, which
// stops the crashed service's running dependents.
//
// Returns an error if a service fails to start; whatever had been started is
// stopped again before returning.
func (a *Application) Run(ctx context.Context, names []string) error {
	targets, err := a.services.Targets(names)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	crashes := make(chan crashReport)

	for _, proc := range a.services.processes {
		g.Go(func() error {
			forwardExits(gctx, proc, crashes)
			return nil
		})
	}

	if a.config.Watch && a.services.Config.Path != "" {
		g.Go(func() error {
			return watchConfig(gctx, a.services.Config.Path, nil)
		})
	}

	g.Go(func() error {
		return a.loop(gctx, targets, crashes)
	})

	return g.Wait()
}

func (a *Application) loop(ctx context.Context, targets []services.ServiceVertex, crashes <-chan crashReport) error {
	ctrl := a.services.Controller

	logging.Info("App", "Starting %d target services", len(targets))
	if err := ctrl.StartServices(ctx, targets); err != nil {
		logging.Error("App", err, "Failed to start services")
		a.shutdown()
		return fmt.Errorf("failed to start services: %w", err)
	}

	logging.Info("App", "Services started. Press Ctrl+C to stop all services and exit.")
	if a.onStarted != nil {
		a.onStarted()
	}

	for {
		select {
		case <-ctx.Done():
			a.shutdown()
			return nil

		case report := <-crashes:
			name := report.proc.Name()
			if err := report.proc.ReportCrash(report.cause); err != nil {
				logging.Error("App", err, "Failed to stop services after %s crashed", name)
			}
			if a.onCrashHandled != nil {
				a.onCrashHandled(name)
			}
		}
	}
}

// shutdown stops everything still running. It does not use the run context,
// which is already cancelled at this point.
func (a *Application) shutdown() {
	logging.Info("App", "--- Shutting down services ---")
	if err := a.services.Controller.StopAll(context.Background()); err != nil {
		logging.Error("App", err, "Failed to stop all services")
	}
}

// forwardExits hands every unexpected exit of proc to the run loop.
func forwardExits(ctx context.Context, proc *services.ProcessService, out chan<- crashReport) {
	for {
		select {
		case <-ctx.Done():
			return
		case cause := <-proc.Exits():
			select {
			case out <- crashReport{proc: proc, cause: cause}:
			case <-ctx.Done():
				return
			}
		}
	}
}
