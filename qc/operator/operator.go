// Package operator implements the gate library. Every operator obeys the
// same contract: Apply validates its qubits, reads the input state, and
// returns a fresh transformed state. Control qubits gate the transform
// uniformly — an operator acts as the identity on every basis index whose
// control bits are not all 1.
package operator

import (
	"github.com/qleap/qleap/qc/ir"
	"github.com/qleap/qleap/qc/state"
)

// Operator is the *minimal* contract each gate kernel must fulfil. It is
// deliberately tiny so circuits, builders and compilers can depend on it
// without pulling in parameter or rendering APIs.
type Operator interface {
	// Apply transforms the state on the given target qubits, gated by
	// the control qubits. The input state is never mutated.
	Apply(s *state.State, targets, controls []int) (*state.State, error)

	// BaseQubits returns the number of target qubits the operator
	// expects.
	BaseQubits() int
}

// Compilable is the optional capability of lowering an operator to IR
// instructions. Operators that cannot be expressed in the IR simply don't
// implement it.
type Compilable interface {
	ToIR(targets, controls []int) []ir.Instruction
}

// AsCompilable checks whether op can be lowered to IR.
func AsCompilable(op Operator) (Compilable, bool) {
	c, ok := op.(Compilable)
	return c, ok
}
