package operator

import (
	"math"
	"math/cmplx"

	"github.com/qleap/qleap/qc/accel"
	"github.com/qleap/qleap/qc/ir"
	"github.com/qleap/qleap/qc/state"
)

// The diagonal phase family: S, S†, T, T† and the arbitrary phase shift.
// Each multiplies the bit-1 half of the pair space by a unit phase.

type phaseS struct{}
type phaseSdag struct{}
type phaseT struct{}
type phaseTdag struct{}

var (
	sGate    = phaseS{}
	sdagGate = phaseSdag{}
	tGate    = phaseT{}
	tdagGate = phaseTdag{}
)

// S returns the shared S (√Z) operator value.
func S() Operator { return sGate }

// Sdag returns the shared S† operator value.
func Sdag() Operator { return sdagGate }

// T returns the shared T (π/8) operator value.
func T() Operator { return tGate }

// Tdag returns the shared T† operator value.
func Tdag() Operator { return tdagGate }

func applySPhase(s *state.State, targets, controls []int, sign float64) (*state.State, error) {
	if err := validateQubits(s, targets, controls, 1); err != nil {
		return nil, err
	}
	phase := complex(0, sign)
	return applyDiagonal(s, targets[0], controls,
		func(bit int, a complex128) complex128 {
			if bit == 1 {
				return phase * a
			}
			return a
		},
		accelSpec{kind: accel.KernelSPhase, args: accel.KernelArgs{Sign: float32(sign)}, ok: true})
}

func applyPhaseAngle(s *state.State, targets, controls []int, angle float64) (*state.State, error) {
	if err := validateQubits(s, targets, controls, 1); err != nil {
		return nil, err
	}
	phase := cmplx.Exp(complex(0, angle))
	return applyDiagonal(s, targets[0], controls,
		func(bit int, a complex128) complex128 {
			if bit == 1 {
				return phase * a
			}
			return a
		},
		accelSpec{
			kind: accel.KernelPhaseShift,
			args: accel.KernelArgs{Cos: float32(math.Cos(angle)), Sin: float32(math.Sin(angle))},
			ok:   true,
		})
}

func (phaseS) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	return applySPhase(s, targets, controls, 1)
}

func (phaseS) BaseQubits() int { return 1 }

func (phaseS) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpS, Targets: targets, Controls: controls}}
}

func (phaseSdag) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	return applySPhase(s, targets, controls, -1)
}

func (phaseSdag) BaseQubits() int { return 1 }

func (phaseSdag) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpSdg, Targets: targets, Controls: controls}}
}

func (phaseT) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	return applyPhaseAngle(s, targets, controls, math.Pi/4)
}

func (phaseT) BaseQubits() int { return 1 }

func (phaseT) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpT, Targets: targets, Controls: controls}}
}

func (phaseTdag) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	return applyPhaseAngle(s, targets, controls, -math.Pi/4)
}

func (phaseTdag) BaseQubits() int { return 1 }

func (phaseTdag) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpTdg, Targets: targets, Controls: controls}}
}

// phaseShift multiplies the |1⟩ component by e^{iθ}.
type phaseShift struct {
	angle float64
}

// P returns a phase-shift operator for the given angle.
func P(angle float64) Operator { return phaseShift{angle: angle} }

func (p phaseShift) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	return applyPhaseAngle(s, targets, controls, p.angle)
}

func (phaseShift) BaseQubits() int { return 1 }

func (p phaseShift) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpP, Targets: targets, Controls: controls, Params: []float64{p.angle}}}
}
