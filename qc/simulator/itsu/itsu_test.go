package itsu

import (
	"testing"

	"github.com/qleap/qleap/qc/builder"
	"github.com/qleap/qleap/qc/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOnceDeterministic(t *testing.T) {
	c, err := builder.New(2).
		X(0).
		CNOT(0, 1).
		Measure(state.BasisComputational, 0, 1).
		Build()
	require.NoError(t, err)

	out, err := NewRunner().RunOnce(c)
	require.NoError(t, err)
	assert.Equal(t, "11", out)
}

func TestRunOnceFredkin(t *testing.T) {
	// control set: targets swap
	c, err := builder.New(3).
		X(0).X(1).
		CSwap(0, 1, 2).
		Measure(state.BasisComputational, 0, 1, 2).
		Build()
	require.NoError(t, err)

	out, err := NewRunner().RunOnce(c)
	require.NoError(t, err)
	assert.Equal(t, "101", out)
}

func TestRunOnceToffoli(t *testing.T) {
	c, err := builder.New(3).
		X(0).X(1).
		Toffoli(0, 1, 2).
		Measure(state.BasisComputational, 0, 1, 2).
		Build()
	require.NoError(t, err)

	out, err := NewRunner().RunOnce(c)
	require.NoError(t, err)
	assert.Equal(t, "111", out)
}

func TestUnsupportedGate(t *testing.T) {
	c, err := builder.New(1).
		RX(0, 0.5).
		Measure(state.BasisComputational, 0).
		Build()
	require.NoError(t, err)

	r := NewRunner()
	require.Error(t, r.ValidateCircuit(c))
	_, err = r.RunOnce(c)
	require.Error(t, err)
}

func TestUnsupportedMeasurementBasis(t *testing.T) {
	c, err := builder.New(1).
		H(0).
		Measure(state.BasisX, 0).
		Build()
	require.NoError(t, err)

	_, err = NewRunner().RunOnce(c)
	require.Error(t, err)
}

func TestValidateCircuitAcceptsSupportedSet(t *testing.T) {
	c, err := builder.New(3).
		H(0).X(1).Y(2).Z(0).S(1).
		CNOT(0, 1).
		CZ([]int{1}, []int{0}).
		SWAP(1, 2).
		Toffoli(0, 1, 2).
		Measure(state.BasisComputational, 0, 1, 2).
		Build()
	require.NoError(t, err)

	require.NoError(t, NewRunner().ValidateCircuit(c))
}
