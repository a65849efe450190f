package operator

import (
	"math"
	"math/cmplx"

	"github.com/qleap/qleap/qc/accel"
	"github.com/qleap/qleap/qc/ir"
	"github.com/qleap/qleap/qc/state"
)

// Bloch-sphere rotations. Each takes the full rotation angle θ and works
// with the half angle α = θ/2.

type rotateX struct{ angle float64 }
type rotateY struct{ angle float64 }
type rotateZ struct{ angle float64 }

// RX returns a rotation about the X axis by angle.
func RX(angle float64) Operator { return rotateX{angle: angle} }

// RY returns a rotation about the Y axis by angle.
func RY(angle float64) Operator { return rotateY{angle: angle} }

// RZ returns a rotation about the Z axis by angle.
func RZ(angle float64) Operator { return rotateZ{angle: angle} }

func (r rotateX) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	if err := validateQubits(s, targets, controls, 1); err != nil {
		return nil, err
	}
	half := r.angle / 2
	cos := complex(math.Cos(half), 0)
	isin := complex(0, math.Sin(half))
	return applyPair(s, targets[0], controls,
		func(a0, a1 complex128) (complex128, complex128) {
			return cos*a0 - isin*a1, -isin*a0 + cos*a1
		},
		accelSpec{
			kind: accel.KernelRotateX,
			args: accel.KernelArgs{Cos: float32(math.Cos(half)), Sin: float32(math.Sin(half))},
			ok:   true,
		})
}

func (rotateX) BaseQubits() int { return 1 }

func (r rotateX) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpRX, Targets: targets, Controls: controls, Params: []float64{r.angle}}}
}

func (r rotateY) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	if err := validateQubits(s, targets, controls, 1); err != nil {
		return nil, err
	}
	half := r.angle / 2
	cos := complex(math.Cos(half), 0)
	sin := complex(math.Sin(half), 0)
	return applyPair(s, targets[0], controls,
		func(a0, a1 complex128) (complex128, complex128) {
			return cos*a0 - sin*a1, sin*a0 + cos*a1
		},
		accelSpec{
			kind: accel.KernelRotateY,
			args: accel.KernelArgs{Cos: float32(math.Cos(half)), Sin: float32(math.Sin(half))},
			ok:   true,
		})
}

func (rotateY) BaseQubits() int { return 1 }

func (r rotateY) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpRY, Targets: targets, Controls: controls, Params: []float64{r.angle}}}
}

func (r rotateZ) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	if err := validateQubits(s, targets, controls, 1); err != nil {
		return nil, err
	}
	half := r.angle / 2
	minus := cmplx.Exp(complex(0, -half))
	plus := cmplx.Exp(complex(0, half))
	return applyDiagonal(s, targets[0], controls,
		func(bit int, a complex128) complex128 {
			if bit == 0 {
				return minus * a
			}
			return plus * a
		},
		accelSpec{
			kind: accel.KernelRotateZ,
			args: accel.KernelArgs{Cos: float32(math.Cos(half)), Sin: float32(math.Sin(half))},
			ok:   true,
		})
}

func (rotateZ) BaseQubits() int { return 1 }

func (r rotateZ) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpRZ, Targets: targets, Controls: controls, Params: []float64{r.angle}}}
}
