package main

import (
	"fmt"
	"sort"

	"github.com/qleap/qleap/qc/builder"
	"github.com/qleap/qleap/qc/simulator"
	"github.com/qleap/qleap/qc/simulator/svec"
	"github.com/qleap/qleap/qc/state"
)

func main() {
	shots := 1024

	fmt.Println("--- Bell State Simulation ---")
	simulateBellState(shots)
	fmt.Println("\n--- GHZ State Simulation ---")
	simulateGHZ(shots)
	fmt.Println("\n--- 2-Qubit Grover Simulation (|11>) ---")
	simulateGrover2Qubit(shots)
}

// simulateBellState prepares the |Φ⁺⟩ Bell state and prints the measured
// histogram.
func simulateBellState(shots int) {
	b := builder.New(2)
	b.H(0).CNOT(0, 1).Measure(state.BasisComputational, 0, 1)

	c, err := b.Build()
	if err != nil {
		fmt.Printf("Error building Bell state circuit: %v\n", err)
		return
	}

	sim := simulator.NewSimulator(simulator.SimulatorOptions{Shots: shots, Runner: svec.NewRunner()})
	hist, err := sim.Run(c)
	if err != nil {
		fmt.Printf("Error running Bell state simulation: %v\n", err)
		return
	}

	pretty(hist, shots)
}

// simulateGHZ prepares the 3-qubit GHZ state.
func simulateGHZ(shots int) {
	b := builder.New(3)
	b.H(0).CNOT(0, 1).CNOT(0, 2).Measure(state.BasisComputational, 0, 1, 2)

	c, err := b.Build()
	if err != nil {
		fmt.Printf("Error building GHZ circuit: %v\n", err)
		return
	}

	sim := simulator.NewSimulator(simulator.SimulatorOptions{Shots: shots, Runner: svec.NewRunner()})
	hist, err := sim.Run(c)
	if err != nil {
		fmt.Printf("Error running GHZ simulation: %v\n", err)
		return
	}

	pretty(hist, shots)
}

// simulateGrover2Qubit runs one Grover iteration on the 2-qubit search
// space, amplifying |11⟩.
func simulateGrover2Qubit(shots int) {
	b := builder.New(2)

	// initial superposition
	b.H(0).H(1)

	// oracle marks |11⟩ by phase flip (controlled-Z)
	b.CZ([]int{1}, []int{0})

	// diffusion operator
	b.H(0).H(1)
	b.X(0).X(1)
	b.CZ([]int{1}, []int{0})
	b.X(0).X(1)
	b.H(0).H(1)

	b.Measure(state.BasisComputational, 0, 1)

	c, err := b.Build()
	if err != nil {
		fmt.Printf("Error building Grover circuit: %v\n", err)
		return
	}

	sim := simulator.NewSimulator(simulator.SimulatorOptions{Shots: shots, Runner: svec.NewRunner()})
	hist, err := sim.Run(c)
	if err != nil {
		fmt.Printf("Error running Grover simulation: %v\n", err)
		return
	}

	pretty(hist, shots)
}

// pretty prints the histogram results in a readable, sorted format.
func pretty(hist map[string]int, shots int) {
	keys := make([]string, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, st := range keys {
		count := hist[st]
		probability := float64(count) / float64(shots)
		fmt.Printf("State |%s>: %d counts (%.2f%%)\n", st, count, probability*100)
	}
}
