package operator

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/qleap/qleap/qc/qerr"
	"github.com/qleap/qleap/qc/qmath"
	"github.com/qleap/qleap/qc/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustApply(t *testing.T, op Operator, s *state.State, targets, controls []int) *state.State {
	t.Helper()
	out, err := op.Apply(s, targets, controls)
	require.NoError(t, err)
	return out
}

func requireAmplitudes(t *testing.T, s *state.State, want []complex128) {
	t.Helper()
	require.Equal(t, len(want), s.Dim())
	for i, w := range want {
		assert.InDelta(t, real(w), real(s.Amplitude(i)), 1e-9, "real part at index %d", i)
		assert.InDelta(t, imag(w), imag(s.Amplitude(i)), 1e-9, "imag part at index %d", i)
	}
}

// ---------------------------------------------------------------- validation

func TestValidation(t *testing.T) {
	s := state.Zero(3)

	t.Run("wrong target arity", func(t *testing.T) {
		_, err := H().Apply(s, []int{0, 1}, nil)
		var numErr *qerr.InvalidNumberOfQubitsError
		require.ErrorAs(t, err, &numErr)
		assert.Equal(t, 2, numErr.Got)
	})

	t.Run("target out of range", func(t *testing.T) {
		_, err := H().Apply(s, []int{3}, nil)
		var idxErr *qerr.InvalidQubitIndexError
		require.ErrorAs(t, err, &idxErr)
	})

	t.Run("control out of range", func(t *testing.T) {
		_, err := H().Apply(s, []int{0}, []int{7})
		var idxErr *qerr.InvalidQubitIndexError
		require.ErrorAs(t, err, &idxErr)
	})

	t.Run("control overlaps target", func(t *testing.T) {
		_, err := X().Apply(s, []int{1}, []int{1})
		var ovErr *qerr.OverlappingQubitsError
		require.ErrorAs(t, err, &ovErr)
		assert.Equal(t, 1, ovErr.Control)
	})

	t.Run("duplicate swap targets", func(t *testing.T) {
		_, err := Swap().Apply(s, []int{2, 2}, nil)
		var idxErr *qerr.InvalidQubitIndexError
		require.ErrorAs(t, err, &idxErr)
	})

	t.Run("validator runs for identity", func(t *testing.T) {
		_, err := ID().Apply(s, []int{5}, nil)
		var idxErr *qerr.InvalidQubitIndexError
		require.ErrorAs(t, err, &idxErr)
	})
}

func TestCNOTControlArity(t *testing.T) {
	s := state.Zero(2)

	_, err := CNOT().Apply(s, []int{0}, nil)
	var numErr *qerr.InvalidNumberOfQubitsError
	require.ErrorAs(t, err, &numErr)

	_, err = CNOT().Apply(s, []int{0}, []int{1, 1})
	require.ErrorAs(t, err, &numErr)
}

func TestToffoliControlArity(t *testing.T) {
	s := state.Zero(3)

	_, err := Toffoli().Apply(s, []int{0}, []int{1})
	var numErr *qerr.InvalidNumberOfQubitsError
	require.ErrorAs(t, err, &numErr)

	_, err = Toffoli().Apply(s, []int{0}, []int{1, 1})
	var dupErr *qerr.DuplicateControlError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, 1, dupErr.Qubit)
}

// ---------------------------------------------------------------- kernels

func TestIdentity(t *testing.T) {
	s := mustApply(t, H(), state.Zero(2), []int{0}, nil)
	out := mustApply(t, ID(), s, []int{0}, nil)
	require.Equal(t, s.Amplitudes(), out.Amplitudes())
}

func TestHadamardOnZero(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)
	out := mustApply(t, H(), state.Zero(1), []int{0}, nil)
	requireAmplitudes(t, out, []complex128{inv, inv})
}

func TestPauliXFlips(t *testing.T) {
	out := mustApply(t, X(), state.Zero(1), []int{0}, nil)
	requireAmplitudes(t, out, []complex128{0, 1})
}

func TestPauliYOnZero(t *testing.T) {
	out := mustApply(t, Y(), state.Zero(1), []int{0}, nil)
	requireAmplitudes(t, out, []complex128{0, complex(0, 1)})
}

func TestPhaseGatesOnOne(t *testing.T) {
	one, err := state.Basis(1, 1)
	require.NoError(t, err)

	tests := []struct {
		name string
		op   Operator
		want complex128
	}{
		{"Z", Z(), -1},
		{"S", S(), complex(0, 1)},
		{"Sdag", Sdag(), complex(0, -1)},
		{"T", T(), cmplx.Exp(complex(0, math.Pi/4))},
		{"Tdag", Tdag(), cmplx.Exp(complex(0, -math.Pi/4))},
		{"P(1.3)", P(1.3), cmplx.Exp(complex(0, 1.3))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustApply(t, tt.op, one, []int{0}, nil)
			requireAmplitudes(t, out, []complex128{0, tt.want})
		})
	}
}

func TestPhaseGatesLeaveZeroAlone(t *testing.T) {
	for _, op := range []Operator{Z(), S(), Sdag(), T(), Tdag(), P(0.4)} {
		out := mustApply(t, op, state.Zero(1), []int{0}, nil)
		requireAmplitudes(t, out, []complex128{1, 0})
	}
}

func TestRXPiGivesMinusIOne(t *testing.T) {
	out := mustApply(t, RX(math.Pi), state.Zero(1), []int{0}, nil)
	requireAmplitudes(t, out, []complex128{0, complex(0, -1)})
}

func TestRYOnZero(t *testing.T) {
	theta := 0.7
	out := mustApply(t, RY(theta), state.Zero(1), []int{0}, nil)
	requireAmplitudes(t, out, []complex128{
		complex(math.Cos(theta/2), 0),
		complex(math.Sin(theta/2), 0),
	})
}

func TestRZOnBasisStates(t *testing.T) {
	theta := 0.9
	out := mustApply(t, RZ(theta), state.Zero(1), []int{0}, nil)
	requireAmplitudes(t, out, []complex128{cmplx.Exp(complex(0, -theta/2)), 0})

	one, err := state.Basis(1, 1)
	require.NoError(t, err)
	out = mustApply(t, RZ(theta), one, []int{0}, nil)
	requireAmplitudes(t, out, []complex128{0, cmplx.Exp(complex(0, theta/2))})
}

func TestSwapOn01(t *testing.T) {
	// |01⟩: qubit 0 is 1, index 1
	s, err := state.Basis(2, 1)
	require.NoError(t, err)
	out := mustApply(t, Swap(), s, []int{0, 1}, nil)
	requireAmplitudes(t, out, []complex128{0, 0, 1, 0})
}

func TestToffoliTruthTable(t *testing.T) {
	// target qubit 0, controls qubits 1 and 2
	for k := range 8 {
		in, err := state.Basis(3, k)
		require.NoError(t, err)
		out := mustApply(t, Toffoli(), in, []int{0}, []int{1, 2})

		want := k
		if k&0b110 == 0b110 {
			want = k ^ 1
		}
		expected := make([]complex128, 8)
		expected[want] = 1
		requireAmplitudes(t, out, expected)
	}
}

// ---------------------------------------------------------------- scenarios

func TestBellPair(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)
	s := mustApply(t, H(), state.Zero(2), []int{0}, nil)
	s = mustApply(t, CNOT(), s, []int{1}, []int{0})
	requireAmplitudes(t, s, []complex128{inv, 0, 0, inv})
}

func TestGHZ(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)
	s := mustApply(t, H(), state.Zero(3), []int{0}, nil)
	s = mustApply(t, CNOT(), s, []int{1}, []int{0})
	s = mustApply(t, CNOT(), s, []int{2}, []int{0})

	expected := make([]complex128, 8)
	expected[0] = inv
	expected[7] = inv
	requireAmplitudes(t, s, expected)
}

func TestPhaseKickback(t *testing.T) {
	// |10⟩ (qubit 1 set): H(1), controlled-Z(control 1, target 0), H(1)
	// returns the state to |10⟩ up to global phase.
	s, err := state.Basis(2, 2)
	require.NoError(t, err)

	out := mustApply(t, H(), s, []int{1}, nil)
	out = mustApply(t, Z(), out, []int{0}, []int{1})
	out = mustApply(t, H(), out, []int{1}, nil)

	assert.True(t, s.EqualUpToGlobalPhase(out))
}

// ---------------------------------------------------------------- properties

func scrambled(t *testing.T, n int) *state.State {
	t.Helper()
	s := state.Zero(n)
	for q := 0; q < n; q++ {
		s = mustApply(t, H(), s, []int{q}, nil)
		s = mustApply(t, T(), s, []int{q}, nil)
	}
	if n >= 2 {
		s = mustApply(t, CNOT(), s, []int{1}, []int{0})
	}
	return s
}

func TestInvolutions(t *testing.T) {
	s := scrambled(t, 3)

	tests := []struct {
		name     string
		op       Operator
		targets  []int
		controls []int
	}{
		{"X", X(), []int{1}, nil},
		{"Y", Y(), []int{1}, nil},
		{"Z", Z(), []int{1}, nil},
		{"H", H(), []int{1}, nil},
		{"SWAP", Swap(), []int{0, 2}, nil},
		{"CNOT", CNOT(), []int{2}, []int{0}},
		{"Toffoli", Toffoli(), []int{0}, []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := mustApply(t, tt.op, s, tt.targets, tt.controls)
			twice := mustApply(t, tt.op, once, tt.targets, tt.controls)
			assert.True(t, s.Equal(twice), "%s applied twice must be the identity", tt.name)
		})
	}
}

func TestInversePairs(t *testing.T) {
	s := scrambled(t, 2)
	theta := 1.1

	tests := []struct {
		name    string
		forward Operator
		back    Operator
	}{
		{"S Sdag", S(), Sdag()},
		{"T Tdag", T(), Tdag()},
		{"RX", RX(theta), RX(-theta)},
		{"RY", RY(theta), RY(-theta)},
		{"RZ", RZ(theta), RZ(-theta)},
		{"P", P(theta), P(-theta)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mid := mustApply(t, tt.forward, s, []int{0}, nil)
			out := mustApply(t, tt.back, mid, []int{0}, nil)
			assert.True(t, s.Equal(out))
		})
	}
}

func TestControlSemantics(t *testing.T) {
	// with any control bit 0 the operator must leave the basis state
	// unchanged
	ops := []Operator{H(), X(), Y(), Z(), S(), T(), RX(0.5), RY(0.5), RZ(0.5), P(0.5)}
	for _, op := range ops {
		in, err := state.Basis(3, 0b010) // control qubit 2 is 0
		require.NoError(t, err)
		out := mustApply(t, op, in, []int{0}, []int{1, 2})
		assert.True(t, in.Equal(out), "%T must be inert when a control is 0", op)
	}
}

func TestControlledSwapLeavesUncontrolled(t *testing.T) {
	in, err := state.Basis(3, 0b001) // control qubit 2 is 0, qubit 0 is 1
	require.NoError(t, err)
	out := mustApply(t, Swap(), in, []int{0, 1}, []int{2})
	assert.True(t, in.Equal(out))

	// control set: swap happens
	in2, err := state.Basis(3, 0b101)
	require.NoError(t, err)
	out2 := mustApply(t, Swap(), in2, []int{0, 1}, []int{2})
	want, err := state.Basis(3, 0b110)
	require.NoError(t, err)
	assert.True(t, want.Equal(out2))
}

func TestNormalizationInvariant(t *testing.T) {
	s := scrambled(t, 4)
	ops := []struct {
		op       Operator
		targets  []int
		controls []int
	}{
		{H(), []int{2}, nil},
		{RX(0.3), []int{3}, []int{0}},
		{Swap(), []int{1, 3}, nil},
		{T(), []int{0}, []int{2}},
		{Y(), []int{1}, nil},
	}
	for _, g := range ops {
		s = mustApply(t, g.op, s, g.targets, g.controls)
	}
	assert.InDelta(t, 1, s.Norm(), 1e-9)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := state.Zero(2)
	_ = mustApply(t, X(), in, []int{0}, nil)
	assert.Equal(t, complex128(1), in.Amplitude(0))
}

// ---------------------------------------------------------------- unitary2

func TestUnitary2MatchesHadamard(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)
	op, err := NewUnitary2(qmath.Matrix2{{inv, inv}, {inv, -inv}})
	require.NoError(t, err)

	s := scrambled(t, 2)
	viaMatrix := mustApply(t, op, s, []int{1}, nil)
	viaKernel := mustApply(t, H(), s, []int{1}, nil)
	assert.True(t, viaKernel.Equal(viaMatrix))
}

func TestUnitary2Rejection(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)

	bad := []qmath.Matrix2{
		{{1.001, 0}, {0, 1}},      // row norm off
		{{inv, inv}, {inv, inv}},  // rows not orthogonal
		{{1, 0}, {0.5, 0.5}},      // second row norm off
	}
	for _, m := range bad {
		_, err := NewUnitary2(m)
		require.ErrorIs(t, err, qerr.ErrNonUnitaryMatrix)
	}
}

func TestUnitary2Controlled(t *testing.T) {
	op, err := NewUnitary2(qmath.Matrix2{{0, 1}, {1, 0}}) // X as a matrix
	require.NoError(t, err)

	in, err := state.Basis(2, 0b10) // control qubit 1 set
	require.NoError(t, err)
	out := mustApply(t, op, in, []int{0}, []int{1})
	want, err := state.Basis(2, 0b11)
	require.NoError(t, err)
	assert.True(t, want.Equal(out))
}
