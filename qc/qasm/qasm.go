// Package qasm serializes circuits to OpenQASM 2.0 text. Gates are
// lowered through their IR form first; anything without a qelib1-style
// spelling (and any non-computational measurement) is rejected rather
// than silently dropped.
package qasm

import (
	"fmt"
	"math"
	"strings"

	"github.com/qleap/qleap/qc/circuit"
	"github.com/qleap/qleap/qc/ir"
	"github.com/qleap/qleap/qc/state"
)

// UnsupportedError reports a gate the emitter has no spelling for.
type UnsupportedError struct {
	Op       ir.Opcode
	Controls int
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("qasm: no emission for op %q with %d controls", e.Op, e.Controls)
}

// Emit renders the circuit as an OpenQASM 2.0 program. Measured qubits
// map to the classical register at the same index.
func Emit(c *circuit.Circuit) (string, error) {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.NumQubits())

	hasMeasure := false
	for _, g := range c.Gates() {
		if g.IsMeasurement() {
			hasMeasure = true
		}
	}
	if hasMeasure {
		fmt.Fprintf(&sb, "creg c[%d];\n", c.NumQubits())
	}

	for _, g := range c.Gates() {
		if g.IsMeasurement() && g.Basis() != state.BasisComputational {
			return "", fmt.Errorf("qasm: only computational-basis measurement is emittable, got %s", g.Basis())
		}
		instrs, ok := g.ToIR()
		if !ok {
			return "", fmt.Errorf("qasm: gate operator %T is not compilable", g.Operator())
		}
		for _, in := range instrs {
			line, err := emitInstruction(in)
			if err != nil {
				return "", err
			}
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

func emitInstruction(in ir.Instruction) (string, error) {
	t := in.Targets
	ctl := in.Controls

	if in.Op == ir.OpMeasure {
		return fmt.Sprintf("measure q[%d] -> c[%d];", t[0], t[0]), nil
	}

	switch len(ctl) {
	case 0:
		switch in.Op {
		case ir.OpH, ir.OpX, ir.OpY, ir.OpZ, ir.OpID, ir.OpS, ir.OpSdg, ir.OpT, ir.OpTdg:
			return fmt.Sprintf("%s q[%d];", in.Op, t[0]), nil
		case ir.OpP:
			return fmt.Sprintf("u1(%s) q[%d];", angle(in.Params[0]), t[0]), nil
		case ir.OpRX, ir.OpRY, ir.OpRZ:
			return fmt.Sprintf("%s(%s) q[%d];", in.Op, angle(in.Params[0]), t[0]), nil
		case ir.OpU:
			return fmt.Sprintf("u3(%s,%s,%s) q[%d];",
				angle(in.Params[0]), angle(in.Params[1]), angle(in.Params[2]), t[0]), nil
		case ir.OpSwap:
			return fmt.Sprintf("swap q[%d],q[%d];", t[0], t[1]), nil
		}
	case 1:
		c := ctl[0]
		switch in.Op {
		case ir.OpX:
			return fmt.Sprintf("cx q[%d],q[%d];", c, t[0]), nil
		case ir.OpY:
			return fmt.Sprintf("cy q[%d],q[%d];", c, t[0]), nil
		case ir.OpZ:
			return fmt.Sprintf("cz q[%d],q[%d];", c, t[0]), nil
		case ir.OpH:
			return fmt.Sprintf("ch q[%d],q[%d];", c, t[0]), nil
		case ir.OpS:
			return fmt.Sprintf("cu1(%s) q[%d],q[%d];", angle(math.Pi/2), c, t[0]), nil
		case ir.OpSdg:
			return fmt.Sprintf("cu1(%s) q[%d],q[%d];", angle(-math.Pi/2), c, t[0]), nil
		case ir.OpT:
			return fmt.Sprintf("cu1(%s) q[%d],q[%d];", angle(math.Pi/4), c, t[0]), nil
		case ir.OpTdg:
			return fmt.Sprintf("cu1(%s) q[%d],q[%d];", angle(-math.Pi/4), c, t[0]), nil
		case ir.OpP:
			return fmt.Sprintf("cu1(%s) q[%d],q[%d];", angle(in.Params[0]), c, t[0]), nil
		case ir.OpRZ:
			return fmt.Sprintf("crz(%s) q[%d],q[%d];", angle(in.Params[0]), c, t[0]), nil
		case ir.OpRX:
			// rx(θ) = u3(θ, −π/2, π/2)
			return fmt.Sprintf("cu3(%s,%s,%s) q[%d],q[%d];",
				angle(in.Params[0]), angle(-math.Pi/2), angle(math.Pi/2), c, t[0]), nil
		case ir.OpRY:
			return fmt.Sprintf("cu3(%s,0,0) q[%d],q[%d];", angle(in.Params[0]), c, t[0]), nil
		case ir.OpU:
			return fmt.Sprintf("cu3(%s,%s,%s) q[%d],q[%d];",
				angle(in.Params[0]), angle(in.Params[1]), angle(in.Params[2]), c, t[0]), nil
		case ir.OpSwap:
			return fmt.Sprintf("cswap q[%d],q[%d],q[%d];", c, t[0], t[1]), nil
		}
	case 2:
		if in.Op == ir.OpX {
			return fmt.Sprintf("ccx q[%d],q[%d],q[%d];", ctl[0], ctl[1], t[0]), nil
		}
	}
	return "", &UnsupportedError{Op: in.Op, Controls: len(ctl)}
}

func angle(v float64) string {
	return fmt.Sprintf("%.10g", v)
}
