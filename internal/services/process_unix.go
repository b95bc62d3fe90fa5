//go:build !windows

package services

import (
	"os"
	"os/exec"
	"syscall"
)

// configureProcAttr runs the command in its own process group, so that
// signals reach the children of shell wrappers too and a Ctrl+C on the
// terminal is left to servicegraph to handle in dependency order.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// signalProcess sends sig to the process group led by p, falling back to p
// alone when the group is gone.
func signalProcess(p *os.Process, sig syscall.Signal) error {
	// negative pid addresses the process group
	if err := syscall.Kill(-p.Pid, sig); err != nil {
		return p.Signal(sig)
	}
	return nil
}
