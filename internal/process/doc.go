// Package process terminates the headless browser together with its
// helper processes, which a plain Kill on the parent leaves behind.
package process

import "errors"

// ErrInvalidPID is returned for PIDs that would address the caller's own
// process group or every process.
var ErrInvalidPID = errors.New("refusing to kill process group for pid <= 1")

func checkPID(pid int) error {
	if pid <= 1 {
		return ErrInvalidPID
	}
	return nil
}
