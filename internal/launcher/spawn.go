package launcher

import (
	"fmt"
	"os"
	"os/exec"
)

// ExecSpawner starts real processes detached from the terminal
type ExecSpawner struct{}

// Spawn starts cmd and releases it; the child is never waited on
func (ExecSpawner) Spawn(c Command) (int, error) {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Env...)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("start %s: %w", c.Name, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("release pid %d: %w", pid, err)
	}
	return pid, nil
}
