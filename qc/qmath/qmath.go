// Package qmath holds the numeric helpers shared by the state and operator
// packages: the tolerance constants used everywhere, the 2×2 complex matrix
// type, and comparison utilities for amplitude vectors.
package qmath

import (
	"math"
	"math/cmplx"
)

// Tolerances. These are the single source of truth; no non-test code in
// the repo hard-codes an epsilon.
const (
	// EpsNorm bounds the allowed deviation of Σ|a_i|² from 1.
	EpsNorm = 1e-9
	// EpsUnit bounds the row-orthonormality error accepted by the
	// Unitary2 constructor.
	EpsUnit = 1e-9
	// EpsProb is the smallest collapse probability a measurement will
	// renormalize by; below it the collapse is degenerate.
	EpsProb = 1e-12
	// EpsEq is the per-amplitude tolerance for state equality.
	EpsEq = 1e-9
	// EpsBackend is the cross-backend agreement tolerance; the
	// accelerator computes in single precision.
	EpsBackend = 1e-5
)

// Matrix2 is a dense 2×2 complex matrix in row-major order.
type Matrix2 [2][2]complex128

// Dagger returns the conjugate transpose.
func (m Matrix2) Dagger() Matrix2 {
	return Matrix2{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

// Mul returns m·n.
func (m Matrix2) Mul(n Matrix2) Matrix2 {
	return Matrix2{
		{m[0][0]*n[0][0] + m[0][1]*n[1][0], m[0][0]*n[0][1] + m[0][1]*n[1][1]},
		{m[1][0]*n[0][0] + m[1][1]*n[1][0], m[1][0]*n[0][1] + m[1][1]*n[1][1]},
	}
}

// IsUnitary reports whether the rows of m are orthonormal within tol.
// Row orthonormality is equivalent to m·m† = I for a 2×2 matrix.
func (m Matrix2) IsUnitary(tol float64) bool {
	a, b := m[0][0], m[0][1]
	c, d := m[1][0], m[1][1]

	if math.Abs(normSqr(a)+normSqr(b)-1) > tol {
		return false
	}
	if math.Abs(normSqr(c)+normSqr(d)-1) > tol {
		return false
	}
	// rows orthogonal: a·c̄ + b·d̄ = 0
	dot := a*cmplx.Conj(c) + b*cmplx.Conj(d)
	return normSqr(dot) <= tol*tol
}

func normSqr(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// NormSqr returns |z|² without the sqrt round-trip of cmplx.Abs.
func NormSqr(z complex128) float64 { return normSqr(z) }

// MaxAmplitudeDelta returns max_i |a[i]-b[i]|, or +Inf when the lengths
// differ.
func MaxAmplitudeDelta(a, b []complex128) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	max := 0.0
	for i := range a {
		if d := cmplx.Abs(a[i] - b[i]); d > max {
			max = d
		}
	}
	return max
}

// NormalizeGlobalPhase divides v through by the unit phase of its first
// amplitude above EpsEq, so states differing only by a global phase
// compare equal. The input is not modified.
func NormalizeGlobalPhase(v []complex128) []complex128 {
	out := make([]complex128, len(v))
	copy(out, v)
	for _, a := range v {
		if cmplx.Abs(a) > EpsEq {
			phase := a / complex(cmplx.Abs(a), 0)
			for i := range out {
				out[i] /= phase
			}
			break
		}
	}
	return out
}

// Fidelity returns |⟨a|b⟩|². 1 means the states are physically identical.
func Fidelity(a, b []complex128) float64 {
	if len(a) != len(b) {
		return 0
	}
	var inner complex128
	for i := range a {
		inner += cmplx.Conj(a[i]) * b[i]
	}
	return normSqr(inner)
}
