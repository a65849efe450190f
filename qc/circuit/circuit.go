// Package circuit composes gates into an ordered sequence over a fixed
// qubit count and threads a state through them. Execution has value
// semantics: a failing gate aborts the run and the caller's state is
// untouched.
package circuit

import (
	"github.com/qleap/qleap/qc/qerr"
	"github.com/qleap/qleap/qc/state"
)

// Circuit is an ordered gate sequence over numQubits qubits. Every
// gate's targets and controls are validated against the qubit count at
// construction and on append.
type Circuit struct {
	numQubits int
	gates     []Gate
}

// New returns an empty circuit on numQubits qubits.
func New(numQubits int) *Circuit {
	if numQubits < 0 {
		numQubits = 0
	}
	return &Circuit{numQubits: numQubits}
}

// WithGates builds a circuit from an existing gate sequence, validating
// every gate's qubit ranges up front.
func WithGates(gates []Gate, numQubits int) (*Circuit, error) {
	c := New(numQubits)
	for _, g := range gates {
		if err := c.AddGate(g); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddGate appends a gate after re-checking its qubit ranges.
func (c *Circuit) AddGate(g Gate) error {
	if err := c.validateGate(g); err != nil {
		return err
	}
	c.gates = append(c.gates, g)
	return nil
}

func (c *Circuit) validateGate(g Gate) error {
	for _, q := range g.Targets() {
		if q < 0 || q >= c.numQubits {
			return &qerr.InvalidQubitIndexError{Index: q, NumQubits: c.numQubits}
		}
	}
	for _, q := range g.Controls() {
		if q < 0 || q >= c.numQubits {
			return &qerr.InvalidQubitIndexError{Index: q, NumQubits: c.numQubits}
		}
	}
	return nil
}

// NumQubits returns the circuit's qubit count.
func (c *Circuit) NumQubits() int { return c.numQubits }

// Gates returns the gate sequence in insertion order.
func (c *Circuit) Gates() []Gate { return c.gates }

// Execute threads initial through every gate in insertion order and
// returns the final state. Measurement outcomes are drawn from the shared
// source; use ExecuteMeasured to capture them or to seed the stream.
func (c *Circuit) Execute(initial *state.State) (*state.State, error) {
	final, _, err := c.ExecuteMeasured(initial, nil)
	return final, err
}

// ExecuteMeasured is Execute with an injectable random source and the
// per-gate measurement results returned in gate order.
func (c *Circuit) ExecuteMeasured(initial *state.State, rng state.Sampler) (*state.State, []state.MeasurementResult, error) {
	if initial.NumQubits() != c.numQubits {
		return nil, nil, &qerr.InvalidNumberOfQubitsError{Got: initial.NumQubits()}
	}
	var results []state.MeasurementResult
	current := initial
	for _, g := range c.gates {
		next, res, err := g.apply(current, rng)
		if err != nil {
			return nil, nil, err
		}
		if res != nil {
			results = append(results, *res)
		}
		current = next
	}
	return current, results, nil
}

// TraceExecution returns the initial state followed by the state after
// each gate; the result always has len(gates)+1 entries.
func (c *Circuit) TraceExecution(initial *state.State) ([]*state.State, error) {
	return c.TraceExecutionWithRand(initial, nil)
}

// TraceExecutionWithRand is TraceExecution with an injectable random
// source for measurement gates.
func (c *Circuit) TraceExecutionWithRand(initial *state.State, rng state.Sampler) ([]*state.State, error) {
	if initial.NumQubits() != c.numQubits {
		return nil, &qerr.InvalidNumberOfQubitsError{Got: initial.NumQubits()}
	}
	trace := make([]*state.State, 0, len(c.gates)+1)
	trace = append(trace, initial)
	current := initial
	for _, g := range c.gates {
		next, _, err := g.apply(current, rng)
		if err != nil {
			return nil, err
		}
		trace = append(trace, next)
		current = next
	}
	return trace, nil
}
