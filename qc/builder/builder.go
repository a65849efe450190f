// Package builder implements a *fluent* declarative DSL for assembling
// circuits. Errors stick: the first failure is remembered and surfaced
// by Build, so call chains never need intermediate checks.
package builder

import (
	"fmt"

	"github.com/qleap/qleap/qc/circuit"
	"github.com/qleap/qleap/qc/operator"
	"github.com/qleap/qleap/qc/qmath"
	"github.com/qleap/qleap/qc/state"
)

// Builder accumulates gates for a circuit on a fixed qubit count.
//
// Argument-order convention, pinned here once: control qubits always come
// first. CNOT(ctrl, tgt), Toffoli(c1, c2, tgt), CSwap(ctrl, t1, t2).
type Builder struct {
	numQubits int
	gates     []circuit.Gate
	err       error
}

// New returns a fresh builder for numQubits qubits.
func New(numQubits int) *Builder {
	return &Builder{numQubits: numQubits}
}

// helper: bail-out pattern
func (b *Builder) bail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

func (b *Builder) add(g circuit.Gate) *Builder {
	if b.err != nil {
		return b
	}
	b.gates = append(b.gates, g)
	return b
}

func (b *Builder) addSingle(op operator.Operator, q int) *Builder {
	return b.add(circuit.NewGate(op, q))
}

func (b *Builder) addEach(op operator.Operator, qs []int) *Builder {
	for _, q := range qs {
		b.addSingle(op, q)
	}
	return b
}

func (b *Builder) addControlled(op operator.Operator, targets, controls []int) *Builder {
	for _, t := range targets {
		b.add(circuit.NewControlledGate(op, []int{t}, controls))
	}
	return b
}

// ---------------------- single-qubit families ------------------------

// H appends a Hadamard on q.
func (b *Builder) H(q int) *Builder { return b.addSingle(operator.H(), q) }

// HMulti appends a Hadamard on each listed qubit.
func (b *Builder) HMulti(qs ...int) *Builder { return b.addEach(operator.H(), qs) }

// CH appends a controlled Hadamard on each target.
func (b *Builder) CH(targets, controls []int) *Builder {
	return b.addControlled(operator.H(), targets, controls)
}

// X appends a Pauli-X on q.
func (b *Builder) X(q int) *Builder { return b.addSingle(operator.X(), q) }

// XMulti appends a Pauli-X on each listed qubit.
func (b *Builder) XMulti(qs ...int) *Builder { return b.addEach(operator.X(), qs) }

// CX appends a controlled X on each target.
func (b *Builder) CX(targets, controls []int) *Builder {
	return b.addControlled(operator.X(), targets, controls)
}

// Y appends a Pauli-Y on q.
func (b *Builder) Y(q int) *Builder { return b.addSingle(operator.Y(), q) }

// YMulti appends a Pauli-Y on each listed qubit.
func (b *Builder) YMulti(qs ...int) *Builder { return b.addEach(operator.Y(), qs) }

// CY appends a controlled Y on each target.
func (b *Builder) CY(targets, controls []int) *Builder {
	return b.addControlled(operator.Y(), targets, controls)
}

// Z appends a Pauli-Z on q.
func (b *Builder) Z(q int) *Builder { return b.addSingle(operator.Z(), q) }

// ZMulti appends a Pauli-Z on each listed qubit.
func (b *Builder) ZMulti(qs ...int) *Builder { return b.addEach(operator.Z(), qs) }

// CZ appends a controlled Z on each target.
func (b *Builder) CZ(targets, controls []int) *Builder {
	return b.addControlled(operator.Z(), targets, controls)
}

// ID appends an identity on q.
func (b *Builder) ID(q int) *Builder { return b.addSingle(operator.ID(), q) }

// IDMulti appends an identity on each listed qubit.
func (b *Builder) IDMulti(qs ...int) *Builder { return b.addEach(operator.ID(), qs) }

// S appends an S gate on q.
func (b *Builder) S(q int) *Builder { return b.addSingle(operator.S(), q) }

// SMulti appends an S gate on each listed qubit.
func (b *Builder) SMulti(qs ...int) *Builder { return b.addEach(operator.S(), qs) }

// CS appends a controlled S on each target.
func (b *Builder) CS(targets, controls []int) *Builder {
	return b.addControlled(operator.S(), targets, controls)
}

// Sdag appends an S† gate on q.
func (b *Builder) Sdag(q int) *Builder { return b.addSingle(operator.Sdag(), q) }

// SdagMulti appends an S† gate on each listed qubit.
func (b *Builder) SdagMulti(qs ...int) *Builder { return b.addEach(operator.Sdag(), qs) }

// CSdag appends a controlled S† on each target.
func (b *Builder) CSdag(targets, controls []int) *Builder {
	return b.addControlled(operator.Sdag(), targets, controls)
}

// T appends a T gate on q.
func (b *Builder) T(q int) *Builder { return b.addSingle(operator.T(), q) }

// TMulti appends a T gate on each listed qubit.
func (b *Builder) TMulti(qs ...int) *Builder { return b.addEach(operator.T(), qs) }

// CT appends a controlled T on each target.
func (b *Builder) CT(targets, controls []int) *Builder {
	return b.addControlled(operator.T(), targets, controls)
}

// Tdag appends a T† gate on q.
func (b *Builder) Tdag(q int) *Builder { return b.addSingle(operator.Tdag(), q) }

// TdagMulti appends a T† gate on each listed qubit.
func (b *Builder) TdagMulti(qs ...int) *Builder { return b.addEach(operator.Tdag(), qs) }

// CTdag appends a controlled T† on each target.
func (b *Builder) CTdag(targets, controls []int) *Builder {
	return b.addControlled(operator.Tdag(), targets, controls)
}

// ---------------------- parametric families --------------------------

// P appends a phase shift by angle on q.
func (b *Builder) P(q int, angle float64) *Builder { return b.addSingle(operator.P(angle), q) }

// PMulti appends a phase shift by angle on each listed qubit.
func (b *Builder) PMulti(qs []int, angle float64) *Builder {
	return b.addEach(operator.P(angle), qs)
}

// CP appends a controlled phase shift on each target.
func (b *Builder) CP(targets, controls []int, angle float64) *Builder {
	return b.addControlled(operator.P(angle), targets, controls)
}

// RX appends an X rotation by angle on q.
func (b *Builder) RX(q int, angle float64) *Builder { return b.addSingle(operator.RX(angle), q) }

// RXMulti appends an X rotation by angle on each listed qubit.
func (b *Builder) RXMulti(qs []int, angle float64) *Builder {
	return b.addEach(operator.RX(angle), qs)
}

// CRX appends a controlled X rotation on each target.
func (b *Builder) CRX(targets, controls []int, angle float64) *Builder {
	return b.addControlled(operator.RX(angle), targets, controls)
}

// RY appends a Y rotation by angle on q.
func (b *Builder) RY(q int, angle float64) *Builder { return b.addSingle(operator.RY(angle), q) }

// RYMulti appends a Y rotation by angle on each listed qubit.
func (b *Builder) RYMulti(qs []int, angle float64) *Builder {
	return b.addEach(operator.RY(angle), qs)
}

// CRY appends a controlled Y rotation on each target.
func (b *Builder) CRY(targets, controls []int, angle float64) *Builder {
	return b.addControlled(operator.RY(angle), targets, controls)
}

// RZ appends a Z rotation by angle on q.
func (b *Builder) RZ(q int, angle float64) *Builder { return b.addSingle(operator.RZ(angle), q) }

// RZMulti appends a Z rotation by angle on each listed qubit.
func (b *Builder) RZMulti(qs []int, angle float64) *Builder {
	return b.addEach(operator.RZ(angle), qs)
}

// CRZ appends a controlled Z rotation on each target.
func (b *Builder) CRZ(targets, controls []int, angle float64) *Builder {
	return b.addControlled(operator.RZ(angle), targets, controls)
}

// Unitary appends an arbitrary 2×2 unitary on q. A non-unitary matrix
// poisons the builder.
func (b *Builder) Unitary(m qmath.Matrix2, q int) *Builder {
	op, err := operator.NewUnitary2(m)
	if err != nil {
		return b.bail(err)
	}
	return b.addSingle(op, q)
}

// CUnitary appends a controlled 2×2 unitary on each target.
func (b *Builder) CUnitary(m qmath.Matrix2, targets, controls []int) *Builder {
	op, err := operator.NewUnitary2(m)
	if err != nil {
		return b.bail(err)
	}
	return b.addControlled(op, targets, controls)
}

// ---------------------- multi-qubit gates ----------------------------

// CNOT appends a controlled-NOT with the given control and target.
func (b *Builder) CNOT(ctrl, tgt int) *Builder {
	return b.add(circuit.NewControlledGate(operator.CNOT(), []int{tgt}, []int{ctrl}))
}

// SWAP appends a SWAP of q1 and q2.
func (b *Builder) SWAP(q1, q2 int) *Builder {
	return b.add(circuit.NewMultiGate(operator.Swap(), []int{q1, q2}))
}

// CSwap appends a Fredkin gate: swap t1 and t2 when ctrl is 1.
func (b *Builder) CSwap(ctrl, t1, t2 int) *Builder {
	return b.add(circuit.NewControlledGate(operator.Swap(), []int{t1, t2}, []int{ctrl}))
}

// Toffoli appends a CCNOT with controls c1, c2 and target tgt.
func (b *Builder) Toffoli(c1, c2, tgt int) *Builder {
	return b.add(circuit.NewControlledGate(operator.Toffoli(), []int{tgt}, []int{c1, c2}))
}

// Measure appends a measurement of the listed qubits in the given basis.
func (b *Builder) Measure(basis state.MeasurementBasis, qubits ...int) *Builder {
	if len(qubits) == 0 {
		return b.bail(fmt.Errorf("builder: measurement needs at least one qubit"))
	}
	return b.add(circuit.NewMeasurement(basis, qubits))
}

// AddGate appends a prebuilt gate.
func (b *Builder) AddGate(g circuit.Gate) *Builder { return b.add(g) }

// AddSubroutine splices a subroutine's gates into the sequence. The
// subroutine must not span more qubits than the builder.
func (b *Builder) AddSubroutine(sub *Subroutine) *Builder {
	if b.err != nil {
		return b
	}
	if sub.numQubits > b.numQubits {
		return b.bail(fmt.Errorf("builder: subroutine spans %d qubits, builder has %d", sub.numQubits, b.numQubits))
	}
	b.gates = append(b.gates, sub.gates...)
	return b
}

// ---------------------- finalisers -----------------------------------

// Build validates the accumulated gates and returns the circuit. The
// builder stays usable.
func (b *Builder) Build() (*circuit.Circuit, error) {
	if b.err != nil {
		return nil, b.err
	}
	return circuit.WithGates(b.gates, b.numQubits)
}

// BuildFinal is Build followed by a reset; the builder starts over
// empty.
func (b *Builder) BuildFinal() (*circuit.Circuit, error) {
	c, err := b.Build()
	b.gates = nil
	b.err = nil
	return c, err
}

// BuildSubroutine packages the accumulated gates as a reusable fragment
// with no execution semantics. The builder stays usable.
func (b *Builder) BuildSubroutine() (*Subroutine, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Subroutine{
		numQubits: b.numQubits,
		gates:     append([]circuit.Gate(nil), b.gates...),
	}, nil
}
