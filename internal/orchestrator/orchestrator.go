package orchestrator

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"servicegraph/internal/dependency"
	"servicegraph/internal/services"
	"servicegraph/pkg/logging"
)

// StopReason tracks why a service was stopped.
type StopReason int

const (
	StopReasonNone StopReason = iota
	StopReasonManual
	StopReasonDependency
	StopReasonCrash
)

// String makes StopReason satisfy the fmt.Stringer interface.
func (r StopReason) String() string {
	switch r {
	case StopReasonManual:
		return "manual"
	case StopReasonDependency:
		return "dependency"
	case StopReasonCrash:
		return "crash"
	default:
		return "none"
	}
}

// Graph is the dependency graph the controller operates on.
type Graph = dependency.Graph[*services.ServiceNode]

// Controller starts and stops the services of a dependency graph in
// dependency order.
//
// Starting a service starts everything it requires first. Stopping a service
// stops every running service that requires it first. A crash reported by a
// service is handled exactly like a stop request for it.
//
// Controller does no locking. All calls, including crash handlers fired by
// services, must be serialised by the caller.
type Controller struct {
	graph *Graph

	// nodes indexes the graph by wrapped service. Filled at construction and
	// on demand for nodes added afterwards.
	nodes map[services.ServiceVertex]*services.ServiceNode

	stopReasons map[*services.ServiceNode]StopReason
}

// New creates a controller for graph and registers its crash handler with
// every service currently in the graph. Nodes added to the graph later can
// still be started and stopped but their crashes are not handled.
func New(graph *Graph) (*Controller, error) {
	if graph == nil {
		return nil, fmt.Errorf("cannot create controller: %w", dependency.ErrNilArgument)
	}

	c := &Controller{
		graph:       graph,
		nodes:       make(map[services.ServiceVertex]*services.ServiceNode, graph.Len()),
		stopReasons: make(map[*services.ServiceNode]StopReason),
	}

	for _, node := range graph.Nodes() {
		svc := node.Service()
		c.nodes[svc] = node
		svc.SetCrashHandler(c.crashHandler(svc))
	}

	logging.Debug("Orchestrator", "Wired crash handlers for %d services", graph.Len())
	return c, nil
}

// StartService starts service after everything it transitively requires.
// Services that are already running are left alone, so shared requirements
// start once. A failing start aborts the walk; whatever was started before
// keeps running.
func (c *Controller) StartService(ctx context.Context, service services.ServiceVertex) error {
	node, err := c.lookup(service)
	if err != nil {
		return err
	}

	opID := newOperationID()
	logging.Debug("Orchestrator", "[%s] Start requested for %s", opID, node)
	return c.walkStart(ctx, node, c.liveStart(opID))
}

// StartServices starts each service in order. The first error aborts.
func (c *Controller) StartServices(ctx context.Context, svcs []services.ServiceVertex) error {
	if svcs == nil {
		return fmt.Errorf("cannot start services: %w", dependency.ErrNilArgument)
	}
	for _, svc := range svcs {
		if err := c.StartService(ctx, svc); err != nil {
			return err
		}
	}
	return nil
}

// StopService stops every running service that requires service, dependents
// first, and then service itself. Service's own Stop is always invoked, even
// when it is not running.
func (c *Controller) StopService(ctx context.Context, service services.ServiceVertex) error {
	return c.stopService(ctx, service, StopReasonManual)
}

// StopServices stops each service in order. The first error aborts.
func (c *Controller) StopServices(ctx context.Context, svcs []services.ServiceVertex) error {
	if svcs == nil {
		return fmt.Errorf("cannot stop services: %w", dependency.ErrNilArgument)
	}
	for _, svc := range svcs {
		if err := c.StopService(ctx, svc); err != nil {
			return err
		}
	}
	return nil
}

// StartAll starts every service of the graph, in insertion order.
func (c *Controller) StartAll(ctx context.Context) error {
	opID := newOperationID()
	logging.Info("Orchestrator", "[%s] Starting all %d services", opID, c.graph.Len())

	start := c.liveStart(opID)
	for _, node := range c.graph.Nodes() {
		if err := c.walkStart(ctx, node, start); err != nil {
			return err
		}
	}
	return nil
}

// StopAll stops every running service, walking the graph in reverse
// insertion order. Services already stopped by an earlier cascade are skipped.
func (c *Controller) StopAll(ctx context.Context) error {
	nodes := c.graph.Nodes()
	slices.Reverse(nodes)

	for _, node := range nodes {
		if !node.IsStarted() {
			continue
		}
		if err := c.stopService(ctx, node.Service(), StopReasonManual); err != nil {
			return err
		}
	}
	return nil
}

// IsRunning reports whether service is part of the graph and running.
func (c *Controller) IsRunning(service services.ServiceVertex) bool {
	node, err := c.lookup(service)
	if err != nil {
		return false
	}
	return node.IsStarted()
}

// StopReason returns why service was last stopped. It reports
// StopReasonNone for services that were never stopped or were started since.
func (c *Controller) StopReason(service services.ServiceVertex) StopReason {
	node, err := c.lookup(service)
	if err != nil {
		return StopReasonNone
	}
	return c.stopReasons[node]
}

// PlanStart returns the services StartService would start, in order, without
// starting anything. Services already running are not part of the plan.
func (c *Controller) PlanStart(service services.ServiceVertex) ([]services.ServiceVertex, error) {
	node, err := c.lookup(service)
	if err != nil {
		return nil, err
	}

	planned := make(map[*services.ServiceNode]bool)
	var order []services.ServiceVertex
	err = c.walkStart(context.Background(), node, lifecycle{
		running: func(n *services.ServiceNode) bool { return n.IsStarted() || planned[n] },
		apply: func(_ context.Context, n *services.ServiceNode) error {
			planned[n] = true
			order = append(order, n.Service())
			return nil
		},
	})
	return order, err
}

// PlanStop returns the services StopService would stop, in order, assuming
// every service of the graph is running. Nothing is stopped.
func (c *Controller) PlanStop(service services.ServiceVertex) ([]services.ServiceVertex, error) {
	node, err := c.lookup(service)
	if err != nil {
		return nil, err
	}

	stopped := make(map[*services.ServiceNode]bool)
	var order []services.ServiceVertex
	err = c.walkStop(context.Background(), node, lifecycle{
		running: func(n *services.ServiceNode) bool { return !stopped[n] },
		apply: func(_ context.Context, n *services.ServiceNode) error {
			stopped[n] = true
			order = append(order, n.Service())
			return nil
		},
	})
	return order, err
}

func (c *Controller) stopService(ctx context.Context, service services.ServiceVertex, reason StopReason) error {
	node, err := c.lookup(service)
	if err != nil {
		return err
	}

	opID := newOperationID()
	logging.Debug("Orchestrator", "[%s] Stop requested for %s (%s)", opID, node, reason)
	return c.walkStop(ctx, node, lifecycle{
		running: (*services.ServiceNode).IsStarted,
		apply: func(ctx context.Context, n *services.ServiceNode) error {
			r := StopReasonDependency
			if n == node {
				r = reason
			}
			logging.Info("Orchestrator", "[%s] Stopping %s (%s)", opID, n, r)
			if err := n.Stop(ctx); err != nil {
				logging.Error("Orchestrator", err, "[%s] Failed to stop %s", opID, n)
				return err
			}
			c.stopReasons[n] = r
			return nil
		},
	})
}

func (c *Controller) liveStart(opID string) lifecycle {
	return lifecycle{
		running: (*services.ServiceNode).IsStarted,
		apply: func(ctx context.Context, n *services.ServiceNode) error {
			logging.Info("Orchestrator", "[%s] Starting %s", opID, n)
			if err := n.Start(ctx); err != nil {
				logging.Error("Orchestrator", err, "[%s] Failed to start %s", opID, n)
				return err
			}
			delete(c.stopReasons, n)
			return nil
		},
	}
}

// crashHandler returns the handler registered with svc. A crash is a stop
// request for svc that cascades to its running dependents.
func (c *Controller) crashHandler(svc services.ServiceVertex) services.CrashHandler {
	return func(cause error) error {
		logging.Warn("Orchestrator", "Service %s crashed: %v", services.NameOf(svc), cause)
		return c.stopService(context.Background(), svc, StopReasonCrash)
	}
}

// lookup returns the node wrapping service.
func (c *Controller) lookup(service services.ServiceVertex) (*services.ServiceNode, error) {
	if service == nil {
		return nil, fmt.Errorf("service: %w", dependency.ErrNilArgument)
	}
	if node, ok := c.nodes[service]; ok {
		return node, nil
	}

	node, err := c.graph.FindNode(func(n *services.ServiceNode) bool {
		return n.Service() == service
	})
	if err != nil {
		return nil, fmt.Errorf("service %s wasn't added to the graph: %w",
			services.NameOf(service), dependency.ErrNotMember)
	}
	c.nodes[service] = node
	return node, nil
}

func newOperationID() string {
	return uuid.NewString()[:8]
}
