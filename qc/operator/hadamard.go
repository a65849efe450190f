package operator

import (
	"math"

	"github.com/qleap/qleap/qc/accel"
	"github.com/qleap/qleap/qc/ir"
	"github.com/qleap/qleap/qc/state"
)

var invSqrt2 = complex(1/math.Sqrt2, 0)

// hadamard maps |0⟩ to (|0⟩+|1⟩)/√2 and |1⟩ to (|0⟩−|1⟩)/√2.
type hadamard struct{}

var hGate = hadamard{}

// H returns the shared Hadamard operator value.
func H() Operator { return hGate }

func (hadamard) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	if err := validateQubits(s, targets, controls, 1); err != nil {
		return nil, err
	}
	return applyPair(s, targets[0], controls,
		func(a0, a1 complex128) (complex128, complex128) {
			return invSqrt2 * (a0 + a1), invSqrt2 * (a0 - a1)
		},
		accelSpec{kind: accel.KernelHadamard, ok: true})
}

func (hadamard) BaseQubits() int { return 1 }

func (hadamard) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpH, Targets: targets, Controls: controls}}
}
