package operator

import (
	"github.com/qleap/qleap/qc/accel"
	"github.com/qleap/qleap/qc/ir"
	"github.com/qleap/qleap/qc/state"
)

// swapGate exchanges two qubits. With one control it is a Fredkin gate.
type swapGate struct{}

var swGate = swapGate{}

// Swap returns the shared SWAP operator value.
func Swap() Operator { return swGate }

func (swapGate) Apply(s *state.State, targets, controls []int) (*state.State, error) {
	if err := validateQubits(s, targets, controls, 2); err != nil {
		return nil, err
	}
	return applySwapPairs(s, targets[0], targets[1], controls,
		accelSpec{kind: accel.KernelSwap, args: accel.KernelArgs{Q2: int32(targets[1])}, ok: true})
}

func (swapGate) BaseQubits() int { return 2 }

func (swapGate) ToIR(targets, controls []int) []ir.Instruction {
	return []ir.Instruction{{Op: ir.OpSwap, Targets: targets, Controls: controls}}
}
