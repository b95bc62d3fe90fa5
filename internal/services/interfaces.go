package services

import (
	"context"
	"fmt"
)

// ServiceVertex is the contract every service orchestrated through the
// dependency graph must satisfy.
//
// Start and Stop are side-effecting and may fail. A failure is reported as-is
// to whoever triggered the call; nothing is rolled back.
type ServiceVertex interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error

	// SetCrashHandler registers the handler the service calls when it detects
	// it has failed. There is a single slot: a later call replaces the
	// previous handler. The service calls it at most once per crash.
	SetCrashHandler(handler CrashHandler)
}

// CrashHandler is called by a service that detected its own failure. cause
// describes the failure; the returned error is whatever handling the crash
// produced (for the orchestrator, the result of the cascading stop).
type CrashHandler func(cause error) error

// Named is an optional interface for services that carry a human readable name.
type Named interface {
	Name() string
}

// NamedService is a ServiceVertex with a name. The registry only holds these.
type NamedService interface {
	ServiceVertex
	Named
}

// ServiceState represents the lifecycle state a service reports about itself.
type ServiceState string

const (
	StateUnknown  ServiceState = "Unknown"
	StateStarting ServiceState = "Starting"
	StateRunning  ServiceState = "Running"
	StateStopping ServiceState = "Stopping"
	StateStopped  ServiceState = "Stopped"
	StateFailed   ServiceState = "Failed"
)

// StateReporter is an optional interface for services that expose their own
// view of their state, independent from the orchestrator's running flag.
type StateReporter interface {
	GetState() ServiceState
	GetLastError() error
}

// ServiceRegistry keeps services by name, in registration order.
type ServiceRegistry interface {
	// Register adds a service to the registry
	Register(service NamedService) error

	// Get returns a service by name
	Get(name string) (NamedService, bool)

	// GetAll returns all registered services in registration order
	GetAll() []NamedService
}

// NameOf returns the name of svc for logs and output. Services that do not
// implement Named are described by their dynamic type and address.
func NameOf(svc ServiceVertex) string {
	if svc == nil {
		return "<nil>"
	}
	if n, ok := svc.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T(%p)", svc, svc)
}
