package state

import (
	"math"
	"math/rand"

	"github.com/qleap/qleap/qc/qerr"
	"github.com/qleap/qleap/qc/qmath"
)

// Sampler supplies the uniform randomness a measurement draws from.
// *rand.Rand satisfies it, which is how tests seed a reproducible stream.
type Sampler interface {
	Float64() float64
}

type globalSampler struct{}

func (globalSampler) Float64() float64 { return rand.Float64() }

// DefaultSampler draws from the shared math/rand source.
func DefaultSampler() Sampler { return globalSampler{} }

type basisKind int

const (
	basisComputational basisKind = iota
	basisX
	basisY
	basisCustom
)

// MeasurementBasis selects the basis a projective measurement is taken
// in. A Custom basis carries the 2×2 unitary M; measuring means rotating
// by M† into the computational basis, measuring, then rotating back by M.
type MeasurementBasis struct {
	kind   basisKind
	custom qmath.Matrix2
}

// The fixed bases.
var (
	BasisComputational = MeasurementBasis{kind: basisComputational}
	BasisX             = MeasurementBasis{kind: basisX}
	BasisY             = MeasurementBasis{kind: basisY}
)

// CustomBasis builds a measurement basis from a 2×2 unitary.
func CustomBasis(m qmath.Matrix2) (MeasurementBasis, error) {
	if !m.IsUnitary(qmath.EpsUnit) {
		return MeasurementBasis{}, qerr.ErrNonUnitaryMatrix
	}
	return MeasurementBasis{kind: basisCustom, custom: m}, nil
}

func (b MeasurementBasis) String() string {
	switch b.kind {
	case basisX:
		return "X"
	case basisY:
		return "Y"
	case basisCustom:
		return "custom"
	default:
		return "computational"
	}
}

var (
	invSqrt2 = complex(1/math.Sqrt2, 0)

	hadamardMat = qmath.Matrix2{
		{invSqrt2, invSqrt2},
		{invSqrt2, -invSqrt2},
	}
	// S† then H, as one matrix: H·S†.
	ySdgH = hadamardMat.Mul(qmath.Matrix2{{1, 0}, {0, complex(0, -1)}})
)

// rotation returns the matrix applied before measuring, or ok=false for
// the computational basis.
func (b MeasurementBasis) rotation() (qmath.Matrix2, bool) {
	switch b.kind {
	case basisX:
		return hadamardMat, true
	case basisY:
		return ySdgH, true
	case basisCustom:
		return b.custom.Dagger(), true
	default:
		return qmath.Matrix2{}, false
	}
}

// inverse returns the matrix applied after measuring to express the
// post-state in the original basis.
func (b MeasurementBasis) inverse() (qmath.Matrix2, bool) {
	switch b.kind {
	case basisX:
		return hadamardMat, true
	case basisY:
		return ySdgH.Dagger(), true
	case basisCustom:
		return b.custom, true
	default:
		return qmath.Matrix2{}, false
	}
}

// MeasurementResult carries the outcome of one Measure call. Outcomes are
// ordered like the Indices argument; NewState is the renormalized
// post-measurement state, expressed in the original basis.
type MeasurementResult struct {
	Basis    MeasurementBasis
	Indices  []int
	Outcomes []int
	NewState *State
}

// Measure projectively measures the given qubits in order, collapsing
// after each draw. The receiver is left untouched. A nil rng uses the
// shared math/rand source.
func (s *State) Measure(basis MeasurementBasis, indices []int, rng Sampler) (*MeasurementResult, error) {
	if len(indices) == 0 {
		return nil, &qerr.InvalidNumberOfQubitsError{Got: 0}
	}
	seen := make(map[int]struct{}, len(indices))
	for _, q := range indices {
		if q < 0 || q >= s.numQubits {
			return nil, &qerr.InvalidQubitIndexError{Index: q, NumQubits: s.numQubits}
		}
		if _, dup := seen[q]; dup {
			return nil, &qerr.InvalidQubitIndexError{Index: q, NumQubits: s.numQubits}
		}
		seen[q] = struct{}{}
	}
	if rng == nil {
		rng = DefaultSampler()
	}

	post := s.Clone()
	if rot, ok := basis.rotation(); ok {
		for _, q := range indices {
			post.applyOneQubitMatrix(rot, q)
		}
	}

	outcomes := make([]int, 0, len(indices))
	for _, q := range indices {
		b, err := post.collapseQubit(q, rng)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, b)
	}

	if inv, ok := basis.inverse(); ok {
		for _, q := range indices {
			post.applyOneQubitMatrix(inv, q)
		}
	}

	return &MeasurementResult{
		Basis:    basis,
		Indices:  append([]int(nil), indices...),
		Outcomes: outcomes,
		NewState: post,
	}, nil
}

// collapseQubit draws one computational-basis outcome for qubit q and
// projects the vector onto it, in place.
func (s *State) collapseQubit(q int, rng Sampler) (int, error) {
	mask := 1 << q

	var p0 float64
	for i, a := range s.amplitudes {
		if i&mask == 0 {
			p0 += qmath.NormSqr(a)
		}
	}

	outcome := 0
	if rng.Float64() >= p0 {
		outcome = 1
	}

	var kept float64
	for i := range s.amplitudes {
		bit := 0
		if i&mask != 0 {
			bit = 1
		}
		if bit == outcome {
			kept += qmath.NormSqr(s.amplitudes[i])
		} else {
			s.amplitudes[i] = 0
		}
	}

	if kept < qmath.EpsProb {
		return 0, &qerr.NumericalError{Msg: "measurement collapse probability below threshold"}
	}
	inv := complex(1/math.Sqrt(kept), 0)
	for i := range s.amplitudes {
		s.amplitudes[i] *= inv
	}
	return outcome, nil
}
