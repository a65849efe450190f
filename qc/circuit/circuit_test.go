package circuit

import (
	"math"
	"math/rand"
	"testing"

	"github.com/qleap/qleap/qc/operator"
	"github.com/qleap/qleap/qc/qerr"
	"github.com/qleap/qleap/qc/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bellGates() []Gate {
	return []Gate{
		NewGate(operator.H(), 0),
		NewControlledGate(operator.CNOT(), []int{1}, []int{0}),
	}
}

func TestWithGatesValidatesRanges(t *testing.T) {
	_, err := WithGates([]Gate{NewGate(operator.H(), 2)}, 2)
	var idxErr *qerr.InvalidQubitIndexError
	require.ErrorAs(t, err, &idxErr)

	_, err = WithGates([]Gate{NewControlledGate(operator.X(), []int{0}, []int{5})}, 2)
	require.ErrorAs(t, err, &idxErr)

	c, err := WithGates(bellGates(), 2)
	require.NoError(t, err)
	assert.Len(t, c.Gates(), 2)
}

func TestAddGateRevalidates(t *testing.T) {
	c := New(2)
	require.NoError(t, c.AddGate(NewGate(operator.H(), 0)))

	err := c.AddGate(NewMeasurement(state.BasisComputational, []int{3}))
	var idxErr *qerr.InvalidQubitIndexError
	require.ErrorAs(t, err, &idxErr)
	assert.Len(t, c.Gates(), 1, "failed append must not grow the circuit")
}

func TestExecuteBell(t *testing.T) {
	c, err := WithGates(bellGates(), 2)
	require.NoError(t, err)

	out, err := c.Execute(state.Zero(2))
	require.NoError(t, err)

	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, real(out.Amplitude(0)), 1e-9)
	assert.InDelta(t, 0, real(out.Amplitude(1)), 1e-9)
	assert.InDelta(t, 0, real(out.Amplitude(2)), 1e-9)
	assert.InDelta(t, inv, real(out.Amplitude(3)), 1e-9)
}

func TestExecuteQubitMismatch(t *testing.T) {
	c, err := WithGates(bellGates(), 2)
	require.NoError(t, err)

	_, err = c.Execute(state.Zero(3))
	var numErr *qerr.InvalidNumberOfQubitsError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, 3, numErr.Got)
}

func TestExecuteAbortsOnGateFailure(t *testing.T) {
	// CNOT without its control fails at apply time, not construction
	c := New(2)
	require.NoError(t, c.AddGate(NewGate(operator.CNOT(), 0)))

	_, err := c.Execute(state.Zero(2))
	var numErr *qerr.InvalidNumberOfQubitsError
	require.ErrorAs(t, err, &numErr)
}

func TestTraceExecution(t *testing.T) {
	c, err := WithGates(bellGates(), 2)
	require.NoError(t, err)

	initial := state.Zero(2)
	trace, err := c.TraceExecution(initial)
	require.NoError(t, err)
	require.Len(t, trace, 3)

	assert.True(t, trace[0].Equal(initial))

	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, real(trace[1].Amplitude(0)), 1e-9)
	assert.InDelta(t, inv, real(trace[1].Amplitude(1)), 1e-9)
	assert.InDelta(t, inv, real(trace[2].Amplitude(3)), 1e-9)
}

func TestExecuteMeasuredBell(t *testing.T) {
	c, err := WithGates(append(bellGates(),
		NewMeasurement(state.BasisComputational, []int{0, 1})), 2)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(5))
	for range 50 {
		final, results, err := c.ExecuteMeasured(state.Zero(2), rng)
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Len(t, results[0].Outcomes, 2)

		// Bell pair outcomes are perfectly correlated
		assert.Equal(t, results[0].Outcomes[0], results[0].Outcomes[1])
		assert.InDelta(t, 1, final.Norm(), 1e-9)
	}
}

func TestEmptyCircuitIsIdentity(t *testing.T) {
	c := New(2)
	in := state.Zero(2)
	out, err := c.Execute(in)
	require.NoError(t, err)
	assert.True(t, in.Equal(out))

	trace, err := c.TraceExecution(in)
	require.NoError(t, err)
	assert.Len(t, trace, 1)
}

func TestGateAccessors(t *testing.T) {
	g := NewControlledGate(operator.X(), []int{2}, []int{0, 1})
	assert.Equal(t, []int{2}, g.Targets())
	assert.Equal(t, []int{0, 1}, g.Controls())
	assert.False(t, g.IsMeasurement())

	m := NewMeasurement(state.BasisX, []int{1, 0})
	assert.True(t, m.IsMeasurement())
	assert.Equal(t, []int{1, 0}, m.Targets())
	assert.Equal(t, state.BasisX, m.Basis())
	assert.Nil(t, m.Operator())
}
