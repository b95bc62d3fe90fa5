// Package orchestrator provides the service graph controller for servicegraph.
//
// The controller takes a fully built dependency graph of ServiceNodes and
// drives the lifecycle of the services in it. It ensures services are started
// in dependency order, that stopping a service first stops everything still
// depending on it, and that a crashing service is handled like a stop request.
//
// # Architecture
//
//   - **Dependency Graph**: dependency.Graph[*services.ServiceNode], built by
//     the caller and only read by the controller
//   - **Crash Wiring**: at construction every service in the graph gets a crash
//     handler bound to it
//   - **Explicit Traversals**: start and stop walks use explicit stacks, so
//     deep graphs do not grow the goroutine stack
//
// # Starting
//
// StartService(svc) walks svc's requirements depth first, in the order they
// were declared, starting each requirement before the service that needs it.
// Running services are skipped together with their requirements, which makes
// the operation idempotent and starts shared (diamond) requirements once.
//
// # Stopping
//
// StopService(svc) first stops every dependent of svc that is running at the
// moment it is considered, recursively and in edge declaration order, then
// svc itself. Requirements of svc are left running.
//
// # Crashes
//
// When a service reports a crash, the controller performs StopService for it.
// The outcome is the same as a manual stop; only the recorded StopReason
// differs (crash for the service, dependency for the cascade).
//
// # Failures
//
// Errors from a service's Start or Stop abort the walk and are returned
// unchanged. Nothing is rolled back: services started or stopped before the
// failure stay that way.
//
// # Planning
//
// PlanStart and PlanStop run the same traversals without touching any
// service and return the order in which services would be started or stopped.
//
// # Thread Safety
//
// The controller does no locking. Callers must serialise every call,
// including crash reports coming from service goroutines. The app package does
// this by funnelling crashes into its run loop.
//
// # Usage Example
//
//	g := dependency.New[*services.ServiceNode]()
//	db, _ := g.AddNode(dbNode)
//	api, _ := g.AddNode(apiNode)
//	_ = g.AddEdge(api, db)
//
//	ctrl, err := orchestrator.New(g)
//	if err != nil {
//	    return err
//	}
//	if err := ctrl.StartService(ctx, apiService); err != nil {
//	    // db may be running even though api failed
//	}
//	_ = ctrl.StopService(ctx, dbService) // stops api, then db
package orchestrator
