//go:build windows

package player

import (
	"os/exec"
	"syscall"
	"time"
)

const createNewProcessGroup = 0x00000200

// supervise detaches the player from the console's ctrl+c group so only
// context cancellation stops it.
func supervise(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNewProcessGroup}
	cmd.Cancel = func() error { return cmd.Process.Kill() }
	cmd.WaitDelay = 3 * time.Second
}
