package circuit

import (
	"github.com/qleap/qleap/qc/ir"
	"github.com/qleap/qleap/qc/operator"
	"github.com/qleap/qleap/qc/state"
)

// Gate pairs an operator with the absolute qubit indices it acts on.
// A measurement gate carries a basis and its measured-qubit list instead
// of an operator; it never has controls. Gates are immutable after
// construction.
type Gate struct {
	op       operator.Operator
	targets  []int
	controls []int
	meas     *measureSpec
}

type measureSpec struct {
	basis  state.MeasurementBasis
	qubits []int
}

// NewGate builds a single-qubit gate.
func NewGate(op operator.Operator, target int) Gate {
	return Gate{op: op, targets: []int{target}}
}

// NewMultiGate builds a gate over an ordered target list.
func NewMultiGate(op operator.Operator, targets []int) Gate {
	return Gate{op: op, targets: append([]int(nil), targets...)}
}

// NewControlledGate builds a gate with explicit control qubits.
func NewControlledGate(op operator.Operator, targets, controls []int) Gate {
	return Gate{
		op:       op,
		targets:  append([]int(nil), targets...),
		controls: append([]int(nil), controls...),
	}
}

// NewMeasurement builds a measurement gate over the given qubits.
func NewMeasurement(basis state.MeasurementBasis, qubits []int) Gate {
	return Gate{meas: &measureSpec{basis: basis, qubits: append([]int(nil), qubits...)}}
}

// Operator returns the gate's operator, or nil for a measurement gate.
func (g Gate) Operator() operator.Operator { return g.op }

// Targets returns the target qubit indices. For a measurement gate these
// are the measured qubits.
func (g Gate) Targets() []int {
	if g.meas != nil {
		return g.meas.qubits
	}
	return g.targets
}

// Controls returns the control qubit indices.
func (g Gate) Controls() []int { return g.controls }

// IsMeasurement reports whether this is a measurement gate.
func (g Gate) IsMeasurement() bool { return g.meas != nil }

// Basis returns the measurement basis; only meaningful for measurement
// gates.
func (g Gate) Basis() state.MeasurementBasis {
	if g.meas != nil {
		return g.meas.basis
	}
	return state.BasisComputational
}

// apply runs the gate against s. Measurement gates draw from rng and
// report their result; unitary gates return a nil result.
func (g Gate) apply(s *state.State, rng state.Sampler) (*state.State, *state.MeasurementResult, error) {
	if g.meas != nil {
		res, err := s.Measure(g.meas.basis, g.meas.qubits, rng)
		if err != nil {
			return nil, nil, err
		}
		return res.NewState, res, nil
	}
	next, err := g.op.Apply(s, g.targets, g.controls)
	if err != nil {
		return nil, nil, err
	}
	return next, nil, nil
}

// ToIR lowers the gate to IR instructions. ok is false when the gate's
// operator does not implement the Compilable capability.
func (g Gate) ToIR() ([]ir.Instruction, bool) {
	if g.meas != nil {
		instrs := make([]ir.Instruction, 0, len(g.meas.qubits))
		for _, q := range g.meas.qubits {
			instrs = append(instrs, ir.Instruction{Op: ir.OpMeasure, Targets: []int{q}})
		}
		return instrs, true
	}
	c, ok := operator.AsCompilable(g.op)
	if !ok {
		return nil, false
	}
	return c.ToIR(g.targets, g.controls), true
}
