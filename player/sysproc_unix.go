//go:build !windows

package player

import (
	"os/exec"
	"syscall"
	"time"
)

// supervise runs the player in its own process group. Cancelling the context
// asks the whole group to quit and kills it if it lingers.
func supervise(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
	cmd.WaitDelay = 3 * time.Second
}
