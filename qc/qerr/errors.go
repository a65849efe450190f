// Package qerr defines the closed set of failures the simulator core can
// report. The variants live in one leaf package so state, operator and
// circuit can share them without import cycles; callers assert on them
// with errors.Is / errors.As.
package qerr

import "fmt"

// Sentinel errors for the variants that carry no payload.
var (
	ErrNonUnitaryMatrix       = fmt.Errorf("qerr: matrix rows are not orthonormal")
	ErrAcceleratorUnavailable = fmt.Errorf("qerr: accelerator context unavailable")
)

// InvalidNumberOfQubitsError reports a target/control arity mismatch or an
// initial-state qubit-count mismatch.
type InvalidNumberOfQubitsError struct {
	Got int
}

func (e *InvalidNumberOfQubitsError) Error() string {
	return fmt.Sprintf("qerr: invalid number of qubits %d", e.Got)
}

// InvalidQubitIndexError reports an out-of-range or duplicated target
// qubit.
type InvalidQubitIndexError struct {
	Index     int
	NumQubits int
}

func (e *InvalidQubitIndexError) Error() string {
	return fmt.Sprintf("qerr: invalid qubit index %d for %d-qubit state", e.Index, e.NumQubits)
}

// OverlappingQubitsError reports a control qubit that coincides with a
// target qubit.
type OverlappingQubitsError struct {
	Control int
	Target  int
}

func (e *OverlappingQubitsError) Error() string {
	return fmt.Sprintf("qerr: control qubit %d overlaps target qubit %d", e.Control, e.Target)
}

// DuplicateControlError reports the same qubit appearing twice in a
// control list.
type DuplicateControlError struct {
	Qubit int
}

func (e *DuplicateControlError) Error() string {
	return fmt.Sprintf("qerr: duplicate control qubit %d", e.Qubit)
}

// NumericalError reports a floating-point degeneracy, e.g. a measurement
// collapse with probability below the renormalization threshold.
type NumericalError struct {
	Msg string
}

func (e *NumericalError) Error() string {
	return "qerr: numerical error: " + e.Msg
}

// AcceleratorError reports an offload failure. The caller's state is
// unchanged when this is returned.
type AcceleratorError struct {
	Msg string
}

func (e *AcceleratorError) Error() string {
	return "qerr: accelerator error: " + e.Msg
}
