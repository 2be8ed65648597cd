//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its child tree with taskkill.
// taskkill fails for processes that already exited; that failure is ignored.
func KillProcessGroup(pid int) error {
	if err := checkPID(pid); err != nil {
		return err
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
	return nil
}
