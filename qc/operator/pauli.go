package operator

import (
	"github.com/qleap/qleap/qc/accel"
	"github.com/qleap/qleap/qc/ir"
	"github.com/qleap/qleap/qc/state"
)

// The three Pauli operators. X and Y mix the pair; Z is diagonal.

type pauliX struct{}
type pauliY struct{}
type pauliZ struct{}

var (
	xGate = pauliX{}
	yGate = pauliY{}
	zGate = pauliZ{}
)

// X returns the shared Pauli-X (NOT) operator value.
func X() Operator { return xGate }

// Y returns the shared Pauli-Y operator value.
func Y() Operator { return yGate }

// Z returns the shared Pauli-Z operator value.
func Z() Operator { return zGate }

func (pauliX) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	if err := validateQubits(s, targets, controls, 1); err != nil {
		return nil, err
	}
	return applyPair(s, targets[0], controls,
		func(a0, a1 complex128) (complex128, complex128) {
			return a1, a0
		},
		accelSpec{kind: accel.KernelPauliX, ok: true})
}

func (pauliX) BaseQubits() int { return 1 }

func (pauliX) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpX, Targets: targets, Controls: controls}}
}

func (pauliY) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	if err := validateQubits(s, targets, controls, 1); err != nil {
		return nil, err
	}
	i := complex(0, 1)
	return applyPair(s, targets[0], controls,
		func(a0, a1 complex128) (complex128, complex128) {
			return -i * a1, i * a0
		},
		accelSpec{kind: accel.KernelPauliY, ok: true})
}

func (pauliY) BaseQubits() int { return 1 }

func (pauliY) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpY, Targets: targets, Controls: controls}}
}

func (pauliZ) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	if err := validateQubits(s, targets, controls, 1); err != nil {
		return nil, err
	}
	return applyDiagonal(s, targets[0], controls,
		func(bit int, a complex128) complex128 {
			if bit == 1 {
				return -a
			}
			return a
		},
		accelSpec{kind: accel.KernelPauliZ, ok: true})
}

func (pauliZ) BaseQubits() int { return 1 }

func (pauliZ) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpZ, Targets: targets, Controls: controls}}
}
