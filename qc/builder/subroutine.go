package builder

import "github.com/qleap/qleap/qc/circuit"

// Subroutine is a reusable gate fragment: the same shape as a circuit
// but with no execution semantics. Splice it into a builder with
// AddSubroutine.
type Subroutine struct {
	numQubits int
	gates     []circuit.Gate
}

// NumQubits returns the qubit span the fragment was built against.
func (s *Subroutine) NumQubits() int { return s.numQubits }

// Gates returns the fragment's gates in order.
func (s *Subroutine) Gates() []circuit.Gate { return s.gates }
