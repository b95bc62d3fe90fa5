package services

import (
	"context"
)

// VirtualService has no runtime of its own. It groups requirements under one
// name so that starting it starts all of them.
type VirtualService struct {
	*BaseService
}

// NewVirtualService creates a virtual service called name.
func NewVirtualService(name string) *VirtualService {
	return &VirtualService{BaseService: NewBaseService(name)}
}

// Start marks the service running.
func (v *VirtualService) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.UpdateState(StateRunning, nil)
	return nil
}

// Stop marks the service stopped.
func (v *VirtualService) Stop(ctx context.Context) error {
	v.UpdateState(StateStopped, nil)
	return nil
}
