package services

import (
	"fmt"
	"sync"

	"servicegraph/internal/dependency"
)

// registry is a simple implementation of ServiceRegistry that remembers
// registration order, which becomes the node order of the graph.
type registry struct {
	mu       sync.RWMutex
	services map[string]NamedService
	order    []string
}

// NewRegistry creates a new service registry
func NewRegistry() ServiceRegistry {
	return &registry{
		services: make(map[string]NamedService),
	}
}

// Register adds a service to the registry
func (r *registry) Register(service NamedService) error {
	if service == nil {
		return fmt.Errorf("cannot register service: %w", dependency.ErrNilArgument)
	}

	name := service.Name()
	if name == "" {
		return fmt.Errorf("service has empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[name]; exists {
		return fmt.Errorf("service %s: %w", name, dependency.ErrDuplicate)
	}

	r.services[name] = service
	r.order = append(r.order, name)
	return nil
}

// Get returns a service by name
func (r *registry) Get(name string) (NamedService, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, exists := r.services[name]
	return service, exists
}

// GetAll returns all registered services
func (r *registry) GetAll() []NamedService {
	r.mu.RLock()
	defer r.mu.RUnlock()

	services := make([]NamedService, 0, len(r.order))
	for _, name := range r.order {
		services = append(services, r.services[name])
	}
	return services
}
