//go:build windows

package probe

import "os/exec"

// exitCodeFromError reads the exit code directly: on Windows the system
// call already returns it without a wait-status wrapper to unpack.
func exitCodeFromError(err error) (code int, ok bool) {
	exitErr, isExitErr := err.(*exec.ExitError)
	if !isExitErr {
		return 0, false
	}
	return exitErr.ExitCode(), true
}
