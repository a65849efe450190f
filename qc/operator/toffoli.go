package operator

import (
	"github.com/qleap/qleap/qc/ir"
	"github.com/qleap/qleap/qc/qerr"
	"github.com/qleap/qleap/qc/state"
)

// toffoli is Pauli-X pinned to exactly two distinct control qubits.
type toffoli struct{}

var ccxGate = toffoli{}

// Toffoli returns the shared CCNOT operator value.
func Toffoli() Operator { return ccxGate }

func (toffoli) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	if len(controls) != 2 {
		return nil, &qerr.InvalidNumberOfQubitsError{Got: len(controls)}
	}
	if q, dup := duplicateControl(controls); dup {
		return nil, &qerr.DuplicateControlError{Qubit: q}
	}
	return xGate.Apply(s, targets, controls)
}

func (toffoli) BaseQubits() int { return 1 }

func (toffoli) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpX, Targets: targets, Controls: controls}}
}
