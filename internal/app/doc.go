// Package app wires a topology file into running services.
//
// # Bootstrap
//
// NewApplication loads the topology file (see package config) and builds:
//
//   - a ServiceRegistry holding one ProcessService or VirtualService per entry
//   - a dependency graph of ServiceNodes, nodes in file order, one edge set
//     per service with requires
//   - an orchestrator.Controller over that graph
//
// Requirement cycles are reported here, with the services on the cycle in the
// error message.
//
// # Run Loop
//
// Run starts the target services and then supervises them from a single
// goroutine, the only one allowed to call into the controller:
//
//   - each ProcessService's Exits channel is forwarded to the loop, which calls
//     ReportCrash; the controller then stops the crashed service and every
//     running service that requires it
//   - SIGINT, SIGTERM or cancelling the context stops all running services,
//     dependents first, and returns
//   - with watching enabled, edits to the topology file are logged as a
//     warning; the graph is not rebuilt
//
// The goroutines are tied together with an errgroup, so a failed start tears
// the rest down.
//
// # Example
//
//	application, err := app.NewApplication(app.NewConfig("servicegraph.yaml", true))
//	if err != nil {
//	    return err
//	}
//	plan, _ := application.Services().Plan("api", false)
//	fmt.Println(plan.Order)
//	return application.Run(ctx, []string{"api"})
package app
