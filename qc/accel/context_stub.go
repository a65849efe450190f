//go:build noaccel

package accel

import "github.com/qleap/qleap/qc/qerr"

// Enabled reports whether the accelerator is compiled in.
func Enabled() bool { return false }

// Run always fails in a noaccel build; the dispatcher never calls it
// because Enabled is false, but direct callers get a stable error.
func Run(KernelType, []complex128, int, int, []int, KernelArgs) ([]complex128, error) {
	return nil, qerr.ErrAcceleratorUnavailable
}
