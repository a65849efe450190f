// Package state implements the pure-state amplitude vector a simulation
// acts on. Index i encodes the basis state |b_{N-1}…b_0⟩ with qubit k at
// bit k of i (LSB convention). Gates never mutate a State in place; every
// transform hands back a fresh value.
package state

import (
	"math"
	"math/bits"

	"github.com/qleap/qleap/qc/qerr"
	"github.com/qleap/qleap/qc/qmath"
)

// State is an amplitude vector over a fixed number of qubits.
type State struct {
	numQubits  int
	amplitudes []complex128
}

// Zero returns the |0…0⟩ state on n qubits.
func Zero(n int) *State {
	if n < 0 {
		n = 0
	}
	amps := make([]complex128, 1<<n)
	amps[0] = 1
	return &State{numQubits: n, amplitudes: amps}
}

// Basis returns the basis state e_k on n qubits.
func Basis(n, k int) (*State, error) {
	if n < 0 {
		return nil, &qerr.InvalidNumberOfQubitsError{Got: n}
	}
	if k < 0 || k >= 1<<n {
		return nil, &qerr.InvalidQubitIndexError{Index: k, NumQubits: n}
	}
	amps := make([]complex128, 1<<n)
	amps[k] = 1
	return &State{numQubits: n, amplitudes: amps}, nil
}

// FromAmplitudes builds a state from an explicit amplitude vector. The
// length must be a power of two and the vector must be normalized within
// qmath.EpsNorm.
func FromAmplitudes(v []complex128) (*State, error) {
	if len(v) == 0 || len(v)&(len(v)-1) != 0 {
		return nil, &qerr.InvalidNumberOfQubitsError{Got: len(v)}
	}
	var norm float64
	for _, a := range v {
		norm += qmath.NormSqr(a)
	}
	if math.Abs(norm-1) > qmath.EpsNorm {
		return nil, &qerr.NumericalError{Msg: "amplitude vector is not normalized"}
	}
	amps := make([]complex128, len(v))
	copy(amps, v)
	return &State{numQubits: bits.TrailingZeros(uint(len(v))), amplitudes: amps}, nil
}

// FromAmplitudesUnchecked wraps v without copying or checking the norm.
// It is meant for kernels whose output is norm-preserving by construction;
// the caller gives up ownership of v.
func FromAmplitudesUnchecked(v []complex128) *State {
	return &State{numQubits: bits.TrailingZeros(uint(len(v))), amplitudes: v}
}

// NumQubits returns the number of qubits.
func (s *State) NumQubits() int { return s.numQubits }

// Dim returns the length of the amplitude vector, 2^n.
func (s *State) Dim() int { return len(s.amplitudes) }

// Amplitude returns the amplitude at basis index i.
func (s *State) Amplitude(i int) complex128 { return s.amplitudes[i] }

// Amplitudes returns the backing amplitude slice. Callers must treat it
// as read-only; copy before mutating.
func (s *State) Amplitudes() []complex128 { return s.amplitudes }

// Clone returns a deep copy.
func (s *State) Clone() *State {
	amps := make([]complex128, len(s.amplitudes))
	copy(amps, s.amplitudes)
	return &State{numQubits: s.numQubits, amplitudes: amps}
}

// Probabilities returns |a_i|² for every basis index.
func (s *State) Probabilities() []float64 {
	probs := make([]float64, len(s.amplitudes))
	for i, a := range s.amplitudes {
		probs[i] = qmath.NormSqr(a)
	}
	return probs
}

// Norm returns Σ|a_i|².
func (s *State) Norm() float64 {
	var norm float64
	for _, a := range s.amplitudes {
		norm += qmath.NormSqr(a)
	}
	return norm
}

// Equal reports whether both states have the same shape and all
// amplitudes agree within qmath.EpsEq.
func (s *State) Equal(o *State) bool {
	if s.numQubits != o.numQubits {
		return false
	}
	return qmath.MaxAmplitudeDelta(s.amplitudes, o.amplitudes) <= qmath.EpsEq
}

// EqualUpToGlobalPhase compares the states after dividing out the global
// phase, so e^{iφ}|ψ⟩ matches |ψ⟩.
func (s *State) EqualUpToGlobalPhase(o *State) bool {
	if s.numQubits != o.numQubits {
		return false
	}
	a := qmath.NormalizeGlobalPhase(s.amplitudes)
	b := qmath.NormalizeGlobalPhase(o.amplitudes)
	return qmath.MaxAmplitudeDelta(a, b) <= qmath.EpsEq
}

// applyOneQubitMatrix multiplies the 2×2 matrix m into qubit q, in place.
// Only the measurement basis rotations use this; gate kernels live in the
// operator package with their own dispatch.
func (s *State) applyOneQubitMatrix(m qmath.Matrix2, q int) {
	mask := 1 << q
	for i := range s.amplitudes {
		if i&mask == 0 {
			j := i | mask
			a0, a1 := s.amplitudes[i], s.amplitudes[j]
			s.amplitudes[i] = m[0][0]*a0 + m[0][1]*a1
			s.amplitudes[j] = m[1][0]*a0 + m[1][1]*a1
		}
	}
}

// renormalize scales the vector back to unit norm. Returns false when the
// norm is too small to divide by.
func (s *State) renormalize() bool {
	norm := s.Norm()
	if norm < qmath.EpsProb {
		return false
	}
	inv := complex(1/math.Sqrt(norm), 0)
	for i := range s.amplitudes {
		s.amplitudes[i] *= inv
	}
	return true
}
