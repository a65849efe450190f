// Package simulator executes circuits for repeated shots across a pool
// of worker goroutines and aggregates the measured bit-strings into a
// histogram. Concrete backends plug in through the OneShotRunner
// interface and the runner registry.
package simulator

import (
	"runtime"

	"github.com/qleap/qleap/internal/logger"
	"github.com/qleap/qleap/qc/circuit"
	"github.com/rs/zerolog"
)

// OneShotRunner is an interface for running a circuit once.
type OneShotRunner interface {
	// RunOnce executes the circuit for one shot and returns the
	// measured bit-string, most-significant qubit first.
	RunOnce(c *circuit.Circuit) (string, error)
}

// SimulatorOptions encapsulates the parameters for creating a Simulator.
type SimulatorOptions struct {
	Shots   int
	Workers int // number of concurrent workers (0 => NumCPU)
	Runner  OneShotRunner
}

// Simulator executes an immutable circuit for a given number of shots
// using a pool of worker goroutines.
type Simulator struct {
	Shots   int
	Workers int
	runner  OneShotRunner

	log logger.Logger
}

// NewSimulator creates a new Simulator.
func NewSimulator(options SimulatorOptions) *Simulator {
	shots := options.Shots
	if shots <= 0 {
		shots = 1024
	}

	workers := options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > shots { // don't start more workers than shots
		workers = shots
	}

	return &Simulator{Shots: shots, Workers: workers, runner: options.Runner,
		log: *logger.NewLogger(logger.LoggerOptions{
			Debug: false,
		})}
}

// SetVerbose makes the simulator log all messages (debug level).
func (s *Simulator) SetVerbose(verbose bool) {
	if verbose {
		s.log.Logger = s.log.Logger.Level(zerolog.DebugLevel)
	} else {
		s.log.Logger = s.log.Logger.Level(zerolog.InfoLevel)
	}
}

// Run defaults to RunParallelStatic.
func (s *Simulator) Run(c *circuit.Circuit) (map[string]int, error) {
	return s.RunParallelStatic(c)
}

// RunSerial executes all shots on the calling goroutine. Mostly useful
// as a baseline and in tests.
func (s *Simulator) RunSerial(c *circuit.Circuit) (map[string]int, error) {
	s.log.Info().
		Int("shots", s.Shots).
		Int("qubits", c.NumQubits()).
		Int("gates", len(c.Gates())).
		Msg("sim: Starting RunSerial")

	hist := make(map[string]int, s.Shots)
	for range s.Shots {
		key, err := s.runner.RunOnce(c)
		if err != nil {
			return nil, err
		}
		hist[key]++
	}
	return hist, nil
}
