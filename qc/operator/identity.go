package operator

import (
	"github.com/qleap/qleap/qc/ir"
	"github.com/qleap/qleap/qc/state"
)

// identity leaves the state untouched. The validator still runs, so an
// Identity on a bad qubit list fails like any other gate.
type identity struct{}

var idGate = identity{}

// ID returns the shared identity operator value.
func ID() Operator { return idGate }

func (identity) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	if err := validateQubits(s, targets, controls, 1); err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

func (identity) BaseQubits() int { return 1 }

func (identity) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpID, Targets: targets, Controls: controls}}
}
