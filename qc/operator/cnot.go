package operator

import (
	"github.com/qleap/qleap/qc/ir"
	"github.com/qleap/qleap/qc/qerr"
	"github.com/qleap/qleap/qc/state"
)

// cnot is Pauli-X pinned to exactly one control qubit.
type cnot struct{}

var cxGate = cnot{}

// CNOT returns the shared controlled-NOT operator value. The control
// qubit travels in the controls list, the target in the targets list.
func CNOT() Operator { return cxGate }

func (cnot) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	if len(controls) != 1 {
		return nil, &qerr.InvalidNumberOfQubitsError{Got: len(controls)}
	}
	return xGate.Apply(s, targets, controls)
}

func (cnot) BaseQubits() int { return 1 }

func (cnot) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpX, Targets: targets, Controls: controls}}
}
