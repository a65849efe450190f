package qasm

import (
	"math"
	"strings"
	"testing"

	"github.com/qleap/qleap/qc/builder"
	"github.com/qleap/qleap/qc/qmath"
	"github.com/qleap/qleap/qc/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitBell(t *testing.T) {
	c, err := builder.New(2).
		H(0).
		CNOT(0, 1).
		Measure(state.BasisComputational, 0, 1).
		Build()
	require.NoError(t, err)

	text, err := Emit(c)
	require.NoError(t, err)

	want := strings.Join([]string{
		"OPENQASM 2.0;",
		`include "qelib1.inc";`,
		"qreg q[2];",
		"creg c[2];",
		"h q[0];",
		"cx q[0],q[1];",
		"measure q[0] -> c[0];",
		"measure q[1] -> c[1];",
	}, "\n") + "\n"
	assert.Equal(t, want, text)
}

func TestEmitWithoutMeasurementSkipsCreg(t *testing.T) {
	c, err := builder.New(1).H(0).Build()
	require.NoError(t, err)

	text, err := Emit(c)
	require.NoError(t, err)
	assert.NotContains(t, text, "creg")
}

func TestEmitGateFamilies(t *testing.T) {
	c, err := builder.New(3).
		X(0).Y(1).Z(2).ID(0).
		S(0).Sdag(1).T(2).Tdag(0).
		P(1, 0.5).RX(2, 0.25).RY(0, 0.75).RZ(1, 1.5).
		SWAP(0, 1).
		Toffoli(0, 1, 2).
		CSwap(0, 1, 2).
		CZ([]int{1}, []int{0}).
		Build()
	require.NoError(t, err)

	text, err := Emit(c)
	require.NoError(t, err)

	for _, line := range []string{
		"x q[0];",
		"y q[1];",
		"z q[2];",
		"id q[0];",
		"s q[0];",
		"sdg q[1];",
		"t q[2];",
		"tdg q[0];",
		"u1(0.5) q[1];",
		"rx(0.25) q[2];",
		"ry(0.75) q[0];",
		"rz(1.5) q[1];",
		"swap q[0],q[1];",
		"ccx q[0],q[1],q[2];",
		"cswap q[0],q[1],q[2];",
		"cz q[0],q[1];",
	} {
		assert.Contains(t, text, line)
	}
}

func TestEmitControlledPhaseFamilies(t *testing.T) {
	c, err := builder.New(2).
		CS([]int{1}, []int{0}).
		CT([]int{1}, []int{0}).
		CP([]int{1}, []int{0}, 0.3).
		CRZ([]int{1}, []int{0}, 0.6).
		CRX([]int{1}, []int{0}, 0.9).
		Build()
	require.NoError(t, err)

	text, err := Emit(c)
	require.NoError(t, err)

	assert.Contains(t, text, "cu1(1.570796327) q[0],q[1];")
	assert.Contains(t, text, "cu1(0.7853981634) q[0],q[1];")
	assert.Contains(t, text, "cu1(0.3) q[0],q[1];")
	assert.Contains(t, text, "crz(0.6) q[0],q[1];")
	assert.Contains(t, text, "cu3(0.9,-1.570796327,1.570796327) q[0],q[1];")
}

func TestEmitUnitaryViaZYZ(t *testing.T) {
	inv := complex(1/math.Sqrt2, 0)
	c, err := builder.New(1).
		Unitary(qmath.Matrix2{{inv, inv}, {inv, -inv}}, 0).
		Build()
	require.NoError(t, err)

	text, err := Emit(c)
	require.NoError(t, err)

	// H = u3(π/2, 0, π) up to global phase
	assert.Contains(t, text, "u3(")
	assert.Contains(t, text, "q[0];")
}

func TestEmitRejectsNonComputationalMeasurement(t *testing.T) {
	c, err := builder.New(1).Measure(state.BasisX, 0).Build()
	require.NoError(t, err)

	_, err = Emit(c)
	require.Error(t, err)
}

func TestEmitRejectsTooManyControls(t *testing.T) {
	c, err := builder.New(3).CH([]int{2}, []int{0, 1}).Build()
	require.NoError(t, err)

	_, err = Emit(c)
	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, 2, unsupported.Controls)
}
