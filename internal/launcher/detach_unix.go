//go:build !windows

package launcher

import (
	"os/exec"
	"syscall"
)

// detach starts the child in a new session so terminal signals sent to wsp
// do not reach the editor.
func detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
}
