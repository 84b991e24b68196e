package ccheck

import (
	"fmt"
	"runtime"
)

// Machine describes the host a configuration run executes on.
type Machine struct {
	OS   string
	Arch string
	// Release is the kernel release string, empty when unavailable.
	Release string
}

func (m Machine) String() string {
	if m.Release == "" {
		return fmt.Sprintf("%s/%s", m.OS, m.Arch)
	}
	return fmt.Sprintf("%s/%s (%s)", m.OS, m.Arch, m.Release)
}

// HostMachine returns the host description for diagnostics output.
func HostMachine() Machine {
	return Machine{
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
		Release: hostRelease(),
	}
}
