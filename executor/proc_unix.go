//go:build !windows

package executor

import (
	"os/exec"
	"syscall"
)

// killGroupOnCancel runs the shell in its own process group so cancelling
// kills everything it started, not just the shell.
func killGroupOnCancel(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
