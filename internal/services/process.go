package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"sync"
	"syscall"
	"time"

	"servicegraph/pkg/logging"
)

// DefaultStopTimeout is how long Stop waits for a process to exit after
// SIGTERM before it is killed.
const DefaultStopTimeout = 10 * time.Second

// ProcessConfig describes a command-backed service.
type ProcessConfig struct {
	Name        string
	Command     []string
	Env         map[string]string
	Dir         string
	StopTimeout time.Duration

	// Stdout and Stderr receive the process output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// ProcessService runs a local command for as long as it is started.
//
// When the process exits without having been asked to, the exit is published
// on Exits. It is up to the owner to call ReportCrash for it, so that the crash
// handler runs on the owner's goroutine rather than on the one waiting for the
// process.
type ProcessService struct {
	*BaseService
	cfg ProcessConfig

	mu       sync.Mutex
	cmd      *exec.Cmd
	done     chan struct{}
	stopping bool

	exits chan error
}

// NewProcessService creates a process service from cfg.
func NewProcessService(cfg ProcessConfig) (*ProcessService, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("process service has empty name")
	}
	if len(cfg.Command) == 0 || cfg.Command[0] == "" {
		return nil, fmt.Errorf("process service %s has no command", cfg.Name)
	}
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = DefaultStopTimeout
	}

	return &ProcessService{
		BaseService: NewBaseService(cfg.Name),
		cfg:         cfg,
		exits:       make(chan error, 1),
	}, nil
}

// Exits delivers unexpected process exits, one value per exit.
func (p *ProcessService) Exits() <-chan error {
	return p.exits
}

// Start launches the command. It returns once the process has been spawned.
func (p *ProcessService) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cmd != nil {
		return fmt.Errorf("process service %s is already running", p.Name())
	}

	p.UpdateState(StateStarting, nil)

	// exec.Command rather than CommandContext: the process has to outlive ctx.
	cmd := exec.Command(p.cfg.Command[0], p.cfg.Command[1:]...)
	cmd.Dir = p.cfg.Dir
	cmd.Env = append(os.Environ(), p.environ()...)
	cmd.Stdout = p.cfg.Stdout
	cmd.Stderr = p.cfg.Stderr
	configureProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		err = fmt.Errorf("failed to start %s: %w", p.Name(), err)
		p.UpdateState(StateFailed, err)
		return err
	}

	p.cmd = cmd
	p.done = make(chan struct{})
	p.stopping = false
	go p.wait(cmd, p.done)

	logging.Info("Service", "Started %s (pid %d)", p.Name(), cmd.Process.Pid)
	p.UpdateState(StateRunning, nil)
	return nil
}

// Stop terminates the process: SIGTERM first, SIGKILL after the stop timeout
// or when ctx is done. Stopping a service whose process is gone is a no-op.
func (p *ProcessService) Stop(ctx context.Context) error {
	p.mu.Lock()
	cmd, done := p.cmd, p.done
	if cmd == nil {
		p.mu.Unlock()
		p.UpdateState(StateStopped, p.GetLastError())
		return nil
	}
	p.stopping = true
	p.mu.Unlock()

	p.UpdateState(StateStopping, nil)

	if err := signalProcess(cmd.Process, syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		logging.Warn("Service", "Failed to signal %s, killing it: %v", p.Name(), err)
		_ = signalProcess(cmd.Process, syscall.SIGKILL)
	}

	timer := time.NewTimer(p.cfg.StopTimeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		logging.Warn("Service", "%s did not exit within %s, killing it", p.Name(), p.cfg.StopTimeout)
		_ = signalProcess(cmd.Process, syscall.SIGKILL)
		<-done
	case <-ctx.Done():
		_ = signalProcess(cmd.Process, syscall.SIGKILL)
		<-done
	}

	p.mu.Lock()
	p.cmd = nil
	p.done = nil
	p.stopping = false
	p.mu.Unlock()

	logging.Info("Service", "Stopped %s", p.Name())
	p.UpdateState(StateStopped, nil)
	return nil
}

func (p *ProcessService) wait(cmd *exec.Cmd, done chan struct{}) {
	err := cmd.Wait()

	p.mu.Lock()
	expected := p.stopping
	if !expected {
		p.cmd = nil
		p.done = nil
	}
	p.mu.Unlock()
	close(done)

	if expected {
		return
	}

	if err == nil {
		err = fmt.Errorf("process %s exited unexpectedly", p.Name())
	} else {
		err = fmt.Errorf("process %s exited unexpectedly: %w", p.Name(), err)
	}
	p.UpdateState(StateFailed, err)

	select {
	case p.exits <- err:
	default:
		logging.Warn("Service", "Dropping exit notification for %s, previous one not consumed", p.Name())
	}
}

func (p *ProcessService) environ() []string {
	keys := make([]string, 0, len(p.cfg.Env))
	for k := range p.cfg.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+p.cfg.Env[k])
	}
	return env
}
