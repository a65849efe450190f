package qmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix2IsUnitary(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)

	tests := []struct {
		name string
		m    Matrix2
		want bool
	}{
		{"identity", Matrix2{{1, 0}, {0, 1}}, true},
		{"hadamard", Matrix2{{inv, inv}, {inv, -inv}}, true},
		{"pauli_y", Matrix2{{0, complex(0, -1)}, {complex(0, 1), 0}}, true},
		{"row_norm_violation", Matrix2{{1.1, 0}, {0, 1}}, false},
		{"non_orthogonal_rows", Matrix2{{1, 0}, {1, 0}}, false},
		{"zero", Matrix2{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.IsUnitary(EpsUnit))
		})
	}
}

func TestMatrix2DaggerMul(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)
	h := Matrix2{{inv, inv}, {inv, -inv}}

	// H·H† = I
	prod := h.Mul(h.Dagger())
	assert.InDelta(t, 1, real(prod[0][0]), EpsEq)
	assert.InDelta(t, 0, real(prod[0][1]), EpsEq)
	assert.InDelta(t, 0, real(prod[1][0]), EpsEq)
	assert.InDelta(t, 1, real(prod[1][1]), EpsEq)

	s := Matrix2{{1, 0}, {0, complex(0, 1)}}
	sd := s.Dagger()
	assert.Equal(t, complex(0, -1), sd[1][1])
}

func TestNormalizeGlobalPhase(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)
	v := []complex128{inv, inv}

	// multiply through by a global phase e^{iπ/3}
	phase := complex(math.Cos(math.Pi/3), math.Sin(math.Pi/3))
	rotated := []complex128{v[0] * phase, v[1] * phase}

	got := NormalizeGlobalPhase(rotated)
	require.Len(t, got, 2)
	assert.LessOrEqual(t, MaxAmplitudeDelta(v, got), EpsEq)

	// input untouched
	assert.Equal(t, v[0]*phase, rotated[0])
}

func TestFidelity(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)
	plus := []complex128{inv, inv}
	minus := []complex128{inv, -inv}
	zero := []complex128{1, 0}

	assert.InDelta(t, 1, Fidelity(plus, plus), EpsEq)
	assert.InDelta(t, 0, Fidelity(plus, minus), EpsEq)
	assert.InDelta(t, 0.5, Fidelity(plus, zero), EpsEq)
	assert.Zero(t, Fidelity(plus, []complex128{1}))
}

func TestMaxAmplitudeDelta(t *testing.T) {
	a := []complex128{1, 0}
	b := []complex128{1, complex(0, 1e-3)}
	assert.InDelta(t, 1e-3, MaxAmplitudeDelta(a, b), 1e-12)
	assert.True(t, math.IsInf(MaxAmplitudeDelta(a, []complex128{1}), 1))
}
