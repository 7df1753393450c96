//go:build windows

package executor

import "os/exec"

// killGroupOnCancel keeps the default kill; WaitDelay releases the pipes.
func killGroupOnCancel(cmd *exec.Cmd) {}
