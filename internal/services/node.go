package services

import (
	"context"
	"fmt"

	"servicegraph/internal/dependency"
)

// ServiceNode is the unit the dependency graph is built from. It wraps exactly
// one service for its whole lifetime and tracks whether the orchestrator has
// started it.
//
// The running flag only changes after the wrapped call returned without an
// error, so a failed Start leaves the node stopped and a failed Stop leaves it
// running.
type ServiceNode struct {
	service ServiceVertex
	started bool
}

// NewServiceNode wraps service in a node.
func NewServiceNode(service ServiceVertex) (*ServiceNode, error) {
	if service == nil {
		return nil, fmt.Errorf("cannot create service node: %w", dependency.ErrNilArgument)
	}
	return &ServiceNode{service: service}, nil
}

// Service returns the wrapped service.
func (n *ServiceNode) Service() ServiceVertex {
	return n.service
}

// IsStarted reports whether the node was started and not stopped since.
func (n *ServiceNode) IsStarted() bool {
	return n.started
}

// Start starts the wrapped service and marks the node as started.
func (n *ServiceNode) Start(ctx context.Context) error {
	if err := n.service.Start(ctx); err != nil {
		return err
	}
	n.started = true
	return nil
}

// Stop stops the wrapped service and marks the node as stopped.
func (n *ServiceNode) Stop(ctx context.Context) error {
	if err := n.service.Stop(ctx); err != nil {
		return err
	}
	n.started = false
	return nil
}

// String returns the name of the wrapped service.
func (n *ServiceNode) String() string {
	return NameOf(n.service)
}
