package services

import (
	"sync"

	"servicegraph/pkg/logging"
)

// BaseService provides the bookkeeping shared by concrete services: a name, a
// self-reported state, the last error and the single crash handler slot.
// Services embed it and call UpdateState and ReportCrash.
//
// Unlike the orchestrator, BaseService is safe for concurrent use, since crash
// detection usually happens on a goroutine of the service.
type BaseService struct {
	mu           sync.RWMutex
	name         string
	state        ServiceState
	lastError    error
	crashHandler CrashHandler
}

// NewBaseService creates a new base service
func NewBaseService(name string) *BaseService {
	return &BaseService{
		name:  name,
		state: StateStopped,
	}
}

// Name returns the service name
func (b *BaseService) Name() string {
	return b.name
}

// GetState returns the current state
func (b *BaseService) GetState() ServiceState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// GetLastError returns the last error
func (b *BaseService) GetLastError() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastError
}

// SetCrashHandler replaces the crash handler.
func (b *BaseService) SetCrashHandler(handler CrashHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.crashHandler = handler
}

// UpdateState records a new state and the error that caused it, if any.
func (b *BaseService) UpdateState(state ServiceState, err error) {
	b.mu.Lock()
	old := b.state
	b.state = state
	b.lastError = err
	b.mu.Unlock()

	if old != state {
		logging.Debug("Service", "%s: %s -> %s", b.name, old, state)
	}
}

// ReportCrash marks the service as failed and calls the registered crash
// handler with cause. The handler's error is returned to the caller.
func (b *BaseService) ReportCrash(cause error) error {
	b.mu.Lock()
	b.state = StateFailed
	b.lastError = cause
	handler := b.crashHandler
	b.mu.Unlock()

	// Call the handler outside of the lock, it will usually call back into Stop.
	if handler == nil {
		logging.Warn("Service", "%s crashed but no crash handler is registered: %v", b.name, cause)
		return nil
	}
	return handler(cause)
}
