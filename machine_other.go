//go:build !unix

package ccheck

// hostRelease returns the kernel release string.
// Not available on non-unix platforms.
func hostRelease() string {
	return ""
}
