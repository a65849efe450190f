// Package testutil provides testing utilities and constants for the qc
// package tests: named configurations, standard fixture circuits and
// histogram assertions.
package testutil

import (
	"math/rand"
	"testing"
	"time"

	"github.com/qleap/qleap/qc/builder"
	"github.com/qleap/qleap/qc/circuit"
	"github.com/qleap/qleap/qc/state"
	"github.com/stretchr/testify/require"
)

// Test constants for consistent configuration across tests.
const (
	DefaultTestTimeout = 10 * time.Second
	LongTestTimeout    = 30 * time.Second

	DefaultShots = 1024
	SmallShots   = 100
	LargeShots   = 2048

	DefaultQubits = 3
	SmallQubits   = 2

	// Statistical tolerances for histogram assertions.
	DefaultTolerance = 0.1
	StrictTolerance  = 0.05

	// Fixed seed for reproducible measurement streams.
	Seed = 42
)

// TestConfig holds configuration for test scenarios.
type TestConfig struct {
	Shots     int
	Qubits    int
	Workers   int
	Timeout   time.Duration
	Tolerance float64
}

// Predefined test configurations.
var (
	QuickTestConfig = TestConfig{
		Shots:     SmallShots,
		Qubits:    SmallQubits,
		Workers:   4,
		Timeout:   DefaultTestTimeout,
		Tolerance: DefaultTolerance,
	}

	StandardTestConfig = TestConfig{
		Shots:     DefaultShots,
		Qubits:    DefaultQubits,
		Workers:   8,
		Timeout:   DefaultTestTimeout,
		Tolerance: DefaultTolerance,
	}
)

// SeededSampler returns a reproducible random stream for measurements.
func SeededSampler(seed int64) state.Sampler {
	return rand.New(rand.NewSource(seed))
}

// NewBellStateCircuit creates a standard Bell state circuit for testing.
func NewBellStateCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()

	b := builder.New(2)
	b.H(0).CNOT(0, 1).Measure(state.BasisComputational, 0, 1)

	c, err := b.Build()
	require.NoError(t, err, "failed to build Bell state circuit")
	return c
}

// NewGHZCircuit creates the 3-qubit GHZ circuit for testing.
func NewGHZCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()

	b := builder.New(3)
	b.H(0).CNOT(0, 1).CNOT(0, 2).Measure(state.BasisComputational, 0, 1, 2)

	c, err := b.Build()
	require.NoError(t, err, "failed to build GHZ circuit")
	return c
}

// NewGroverCircuit creates a standard 2-qubit Grover circuit for testing.
func NewGroverCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()

	b := builder.New(2)

	// initial superposition
	b.H(0).H(1)

	// oracle marks |11⟩ by phase flip
	b.CZ([]int{1}, []int{0})

	// diffusion operator
	b.H(0).H(1)
	b.X(0).X(1)
	b.CZ([]int{1}, []int{0})
	b.X(0).X(1)
	b.H(0).H(1)

	b.Measure(state.BasisComputational, 0, 1)

	c, err := b.Build()
	require.NoError(t, err, "failed to build Grover circuit")
	return c
}

// AssertHistogramDistribution validates histogram results within
// tolerance.
func AssertHistogramDistribution(t *testing.T, hist map[string]int, expected map[string]float64, totalShots int, tolerance float64) {
	t.Helper()

	for st, expectedProb := range expected {
		actualCount := hist[st]
		actualProb := float64(actualCount) / float64(totalShots)

		if expectedProb == 0 {
			require.Equal(t, 0, actualCount, "state %s should have 0 count", st)
		} else {
			require.InDelta(t, expectedProb, actualProb, tolerance,
				"state %s probability mismatch: expected %.3f, got %.3f",
				st, expectedProb, actualProb)
		}
	}
}

// RequireStatesEqual fails the test unless the two states match within
// the amplitude tolerance.
func RequireStatesEqual(t *testing.T, want, got *state.State, msgAndArgs ...interface{}) {
	t.Helper()
	require.True(t, want.Equal(got), msgAndArgs...)
}

// SkipIfShort skips the test if running with -short flag.
func SkipIfShort(t *testing.T, reason string) {
	t.Helper()
	if testing.Short() {
		t.Skipf("skipping test in short mode: %s", reason)
	}
}
