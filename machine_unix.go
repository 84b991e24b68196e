//go:build unix

package ccheck

import "golang.org/x/sys/unix"

// hostRelease returns the kernel release string (e.g., "6.1.0-generic").
func hostRelease() string {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uname.Release[:])
}
