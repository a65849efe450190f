package operator

import (
	"math"
	"math/cmplx"

	"github.com/qleap/qleap/qc/ir"
	"github.com/qleap/qleap/qc/qerr"
	"github.com/qleap/qleap/qc/qmath"
	"github.com/qleap/qleap/qc/state"
)

// unitary2 applies an arbitrary 2×2 unitary to one qubit. The matrix is
// checked for row orthonormality at construction, never at apply time.
type unitary2 struct {
	matrix qmath.Matrix2
}

// NewUnitary2 builds the operator, rejecting non-unitary matrices.
func NewUnitary2(m qmath.Matrix2) (Operator, error) {
	if !m.IsUnitary(qmath.EpsUnit) {
		return nil, qerr.ErrNonUnitaryMatrix
	}
	return unitary2{matrix: m}, nil
}

func (u unitary2) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	if err := validateQubits(s, targets, controls, 1); err != nil {
		return nil, err
	}
	m := u.matrix
	// No device routine takes a full matrix argument, so this kernel
	// tops out at the parallel tier.
	return applyPair(s, targets[0], controls,
		func(a0, a1 complex128) (complex128, complex128) {
			return m[0][0]*a0 + m[0][1]*a1, m[1][0]*a0 + m[1][1]*a1
		},
		noAccel())
}

func (unitary2) BaseQubits() int { return 1 }

// ToIR lowers the matrix to a u(θ,φ,λ) instruction via ZYZ decomposition;
// the global phase is dropped, which QASM semantics permit.
func (u unitary2) ToIR(targets, controls []int) []ir.Instruction {
	theta, phi, lambda := zyzAngles(u.matrix)
	return []ir.Instruction{{
		Op:       ir.OpU,
		Targets:  targets,
		Controls: controls,
		Params:   []float64{theta, phi, lambda},
	}}
}

// zyzAngles factors a 2×2 unitary as e^{iγ}·U(θ,φ,λ) with
// U = [[cos(θ/2), −e^{iλ}sin(θ/2)], [e^{iφ}sin(θ/2), e^{i(φ+λ)}cos(θ/2)]]
// and returns (θ, φ, λ).
func zyzAngles(m qmath.Matrix2) (theta, phi, lambda float64) {
	c := cmplx.Abs(m[0][0])
	s := cmplx.Abs(m[1][0])
	theta = 2 * math.Atan2(s, c)

	switch {
	case s < qmath.EpsEq:
		// diagonal: φ is free
		gamma := cmplx.Phase(m[0][0])
		lambda = cmplx.Phase(m[1][1]) - gamma
	case c < qmath.EpsEq:
		// anti-diagonal: λ is free
		gamma := cmplx.Phase(-m[0][1])
		phi = cmplx.Phase(m[1][0]) - gamma
	default:
		gamma := cmplx.Phase(m[0][0])
		phi = cmplx.Phase(m[1][0]) - gamma
		lambda = cmplx.Phase(-m[0][1]) - gamma
	}
	return theta, phi, lambda
}
