//go:build !windows

package probe

import (
	"os/exec"
	"syscall"
)

// exitCodeFromError strips the POSIX wait-status wrapper to obtain the raw
// exit code.
func exitCodeFromError(err error) (code int, ok bool) {
	exitErr, isExitErr := err.(*exec.ExitError)
	if !isExitErr {
		return 0, false
	}
	status, isWaitStatus := exitErr.Sys().(syscall.WaitStatus)
	if !isWaitStatus {
		return exitErr.ExitCode(), true
	}
	return status.ExitStatus(), true
}
