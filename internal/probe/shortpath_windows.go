//go:build windows

package probe

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// shortPath converts a compiler path to its 8.3 short form, avoiding shell
// re-parsing of embedded spaces when the assembled command is run through
// cmd.exe. If the conversion fails (the path does not exist, or the
// filesystem does not support 8.3 names), the original path is returned.
func shortPath(path string) string {
	utf16Path, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return path
	}

	buf := make([]uint16, 260)
	n, err := windows.GetShortPathName(utf16Path, &buf[0], uint32(len(buf)))
	if err != nil || n == 0 {
		return path
	}
	if int(n) > len(buf) {
		buf = make([]uint16, n)
		n, err = windows.GetShortPathName(utf16Path, &buf[0], uint32(len(buf)))
		if err != nil || n == 0 {
			return path
		}
	}
	return windows.UTF16ToString(buf[:n])
}
