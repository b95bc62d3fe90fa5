// Package services provides the service abstraction layer for servicegraph.
//
// It defines the contract every orchestrated service implements, the node type
// the dependency graph is built from, and the concrete services the CLI can
// run.
//
// # Core Concepts
//
// ServiceVertex: the capability contract. A service can be started, stopped,
// and accepts a single crash handler it calls when it detects its own failure.
//
//	type ServiceVertex interface {
//	    Start(ctx context.Context) error
//	    Stop(ctx context.Context) error
//	    SetCrashHandler(handler CrashHandler)
//	}
//
// ServiceNode: wraps one ServiceVertex and tracks whether it was started. The
// flag only flips after the wrapped call succeeded. Nodes, not services, are
// what the dependency graph stores.
//
// BaseService: embeddable bookkeeping (name, self-reported state, last error,
// crash handler slot) with ReportCrash to invoke the handler.
//
// ServiceRegistry: services by name, in registration order.
//
// # Concrete Services
//
//   - ProcessService: runs a local command. Unexpected exits are published on
//     Exits() so the owner can report the crash from its own goroutine.
//   - VirtualService: no runtime; used to group requirements under a name.
//
// # Crash Reporting
//
// A crash handler must not be called concurrently with orchestrator
// operations, since the orchestrator does not lock. ProcessService therefore
// never calls its handler itself:
//
//	for err := range proc.Exits() {
//	    // on the goroutine that owns the orchestrator
//	    if stopErr := proc.ReportCrash(err); stopErr != nil {
//	        logging.Error("App", stopErr, "cascading stop failed")
//	    }
//	}
//
// # Example Usage
//
//	registry := services.NewRegistry()
//	db, _ := services.NewProcessService(services.ProcessConfig{
//	    Name:    "db",
//	    Command: []string{"postgres", "-D", "/var/lib/pg"},
//	})
//	registry.Register(db)
//
//	node, _ := services.NewServiceNode(db)
//	if err := node.Start(ctx); err != nil {
//	    // node.IsStarted() is still false
//	}
package services
