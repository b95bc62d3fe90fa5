package app

import (
	"fmt"

	"servicegraph/internal/config"
	"servicegraph/internal/dependency"
	"servicegraph/internal/formatting"
	"servicegraph/internal/orchestrator"
	"servicegraph/internal/services"
	"servicegraph/pkg/logging"
	textutil "servicegraph/pkg/strings"
)

// Services holds everything built from a topology file: the registry of
// named services, the dependency graph over them and the controller driving
// it.
//
// Services is not safe for concurrent use. While running, only the run loop
// touches it.
type Services struct {
	Config     config.Config
	Registry   services.ServiceRegistry
	Graph      *orchestrator.Graph
	Controller *orchestrator.Controller

	// processes are watched for unexpected exits by the run loop.
	processes []*services.ProcessService
}

// InitializeServices turns cfg into a ready controller.
//
// Initialization Sequence:
//  1. **Services**: one ProcessService or VirtualService per entry, registered by name
//  2. **Nodes**: every service is wrapped in a ServiceNode and added to the graph in file order
//  3. **Edges**: each service's requires list is declared as a single edge set
//  4. **Controller**: built over the finished graph, which wires the crash handlers
//
// A requirement cycle fails step 3 with a dependency.CycleError naming the
// services on the cycle.
func InitializeServices(cfg config.Config) (*Services, error) {
	registry := services.NewRegistry()
	graph := dependency.New[*services.ServiceNode]()
	nodes := make(map[string]*services.ServiceNode, len(cfg.Services))

	var processes []*services.ProcessService
	for _, sc := range cfg.Services {
		svc, err := newService(sc)
		if err != nil {
			return nil, err
		}
		if proc, ok := svc.(*services.ProcessService); ok {
			processes = append(processes, proc)
		}

		if err := registry.Register(svc); err != nil {
			return nil, fmt.Errorf("failed to register service %s: %w", sc.Name, err)
		}

		node, err := services.NewServiceNode(svc)
		if err != nil {
			return nil, err
		}
		if _, err := graph.AddNode(node); err != nil {
			return nil, fmt.Errorf("failed to add service %s to the graph: %w", sc.Name, err)
		}
		nodes[sc.Name] = node
	}

	for _, sc := range cfg.Services {
		if len(sc.Requires) == 0 {
			continue
		}

		reqs := make([]*services.ServiceNode, 0, len(sc.Requires))
		for _, name := range sc.Requires {
			req, ok := nodes[name]
			if !ok {
				return nil, fmt.Errorf("service %s requires unknown service %s: %w", sc.Name, name, dependency.ErrNotFound)
			}
			reqs = append(reqs, req)
		}

		if err := graph.AddEdges(nodes[sc.Name], reqs); err != nil {
			return nil, fmt.Errorf("invalid requirements for service %s: %w", sc.Name, err)
		}
	}

	ctrl, err := orchestrator.New(graph)
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}

	logging.Info("Bootstrap", "Built dependency graph with %d services", graph.Len())
	return &Services{
		Config:     cfg,
		Registry:   registry,
		Graph:      graph,
		Controller: ctrl,
		processes:  processes,
	}, nil
}

func newService(sc config.ServiceConfig) (services.NamedService, error) {
	if sc.IsVirtual() {
		return services.NewVirtualService(sc.Name), nil
	}

	proc, err := services.NewProcessService(services.ProcessConfig{
		Name:        sc.Name,
		Command:     sc.Command,
		Env:         sc.Env,
		Dir:         sc.Dir,
		StopTimeout: sc.StopTimeout,
		Stdout:      logging.Writer(sc.Name),
		Stderr:      logging.Writer(sc.Name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service %s: %w", sc.Name, err)
	}
	return proc, nil
}

// Vertex returns the service called name.
func (s *Services) Vertex(name string) (services.ServiceVertex, error) {
	svc, ok := s.Registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown service %q: %w", name, dependency.ErrNotFound)
	}
	return svc, nil
}

// Targets resolves the services to start. Explicit names win, then the
// config's targets, then every service in file order.
func (s *Services) Targets(names []string) ([]services.ServiceVertex, error) {
	if len(names) == 0 {
		names = s.Config.Targets
	}
	if len(names) == 0 {
		all := s.Registry.GetAll()
		targets := make([]services.ServiceVertex, 0, len(all))
		for _, svc := range all {
			targets = append(targets, svc)
		}
		return targets, nil
	}

	targets := make([]services.ServiceVertex, 0, len(names))
	for _, name := range names {
		svc, err := s.Vertex(name)
		if err != nil {
			return nil, err
		}
		targets = append(targets, svc)
	}
	return targets, nil
}

// Plan computes the start (or stop) order for the service called name.
func (s *Services) Plan(name string, stop bool) (formatting.Plan, error) {
	svc, err := s.Vertex(name)
	if err != nil {
		return formatting.Plan{}, err
	}

	action := "start"
	var order []services.ServiceVertex
	if stop {
		action = "stop"
		order, err = s.Controller.PlanStop(svc)
	} else {
		order, err = s.Controller.PlanStart(svc)
	}
	if err != nil {
		return formatting.Plan{}, err
	}

	names := make([]string, 0, len(order))
	for _, v := range order {
		names = append(names, services.NameOf(v))
	}
	return formatting.Plan{Action: action, Target: name, Order: names}, nil
}

// Describe lists the services of the graph in file order.
func (s *Services) Describe() []formatting.ServiceInfo {
	infos := make([]formatting.ServiceInfo, 0, s.Graph.Len())
	for _, node := range s.Graph.Nodes() {
		name := node.String()
		sc, _ := s.Config.Service(name)
		infos = append(infos, formatting.ServiceInfo{
			Name:       name,
			Kind:       string(sc.Kind),
			Command:    textutil.Argv(sc.Command),
			Requires:   nodeNames(s.Graph.Requirements(node)),
			RequiredBy: nodeNames(s.Graph.Dependents(node)),
		})
	}
	return infos
}

// EdgeCount returns the number of requirement edges in the graph.
func (s *Services) EdgeCount() int {
	n := 0
	for _, node := range s.Graph.Nodes() {
		n += len(s.Graph.Requirements(node))
	}
	return n
}

func nodeNames(nodes []*services.ServiceNode) []string {
	if len(nodes) == 0 {
		return nil
	}
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.String()
	}
	return names
}
