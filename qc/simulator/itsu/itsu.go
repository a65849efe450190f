// Package itsu is a cross-check backend on github.com/itsubaki/q. It
// covers the gate subset that library exposes; tests use it to validate
// the svec kernels against an independent implementation.
package itsu

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/itsubaki/q"
	"github.com/qleap/qleap/qc/circuit"
	"github.com/qleap/qleap/qc/operator"
	"github.com/qleap/qleap/qc/simulator"
	"github.com/qleap/qleap/qc/state"
)

// Runner plays circuits on the itsubaki/q simulator.
type Runner struct {
	metrics runnerMetrics
}

type runnerMetrics struct {
	totalExecutions atomic.Int64
	successfulRuns  atomic.Int64
	failedRuns      atomic.Int64
	totalTime       atomic.Int64 // nanoseconds
}

// NewRunner creates a new cross-check runner.
func NewRunner() *Runner { return &Runner{} }

// RunOnce implements simulator.OneShotRunner.
func (r *Runner) RunOnce(c *circuit.Circuit) (string, error) {
	start := time.Now()
	defer func() {
		r.metrics.totalExecutions.Add(1)
		r.metrics.totalTime.Add(int64(time.Since(start)))
	}()

	sim := q.New()
	result, err := runOnce(sim, c)
	if err != nil {
		r.metrics.failedRuns.Add(1)
	} else {
		r.metrics.successfulRuns.Add(1)
	}
	return result, err
}

// runOnce plays the circuit exactly one time on the provided simulator,
// returning the measured bit-string (most-significant qubit first, over
// the measured qubits only, to match the svec format).
func runOnce(sim *q.Q, c *circuit.Circuit) (string, error) {
	qs := sim.ZeroWith(c.NumQubits())
	outcomes := make(map[int]bool)

	for i, g := range c.Gates() {
		if g.IsMeasurement() {
			if g.Basis() != state.BasisComputational {
				return "", fmt.Errorf("itsu: unsupported measurement basis %s (op %d)", g.Basis(), i)
			}
			for _, idx := range g.Targets() {
				m := sim.Measure(qs[idx])
				outcomes[idx] = m.IsOne()
			}
			continue
		}

		t := g.Targets()
		ctl := g.Controls()
		op := g.Operator()

		switch {
		case op == operator.H() && len(ctl) == 0:
			sim.H(qs[t[0]])
		case (op == operator.X() || op == operator.CNOT() || op == operator.Toffoli()) && len(ctl) == 0:
			sim.X(qs[t[0]])
		case (op == operator.X() || op == operator.CNOT()) && len(ctl) == 1:
			sim.CNOT(qs[ctl[0]], qs[t[0]])
		case (op == operator.X() || op == operator.Toffoli()) && len(ctl) == 2:
			sim.Toffoli(qs[ctl[0]], qs[ctl[1]], qs[t[0]])
		case op == operator.Y() && len(ctl) == 0:
			sim.Y(qs[t[0]])
		case op == operator.Z() && len(ctl) == 0:
			sim.Z(qs[t[0]])
		case op == operator.Z() && len(ctl) == 1:
			sim.CZ(qs[ctl[0]], qs[t[0]])
		case op == operator.S() && len(ctl) == 0:
			sim.S(qs[t[0]])
		case op == operator.Swap() && len(ctl) == 0:
			sim.Swap(qs[t[0]], qs[t[1]])
		case op == operator.Swap() && len(ctl) == 1:
			// Fredkin via CNOT(b,a), Toffoli(ctrl,a,b), CNOT(b,a)
			ctrl, a, b := qs[ctl[0]], qs[t[0]], qs[t[1]]
			sim.CNOT(b, a)
			sim.Toffoli(ctrl, a, b)
			sim.CNOT(b, a)
		default:
			return "", fmt.Errorf("itsu: unsupported gate %T with %d controls (op %d)", op, len(ctl), i)
		}
	}

	if len(outcomes) == 0 {
		return "0", nil
	}
	var sb strings.Builder
	for idx := c.NumQubits() - 1; idx >= 0; idx-- {
		if one, ok := outcomes[idx]; ok {
			if one {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String(), nil
}

// GetBackendInfo implements simulator.BackendProvider.
func (r *Runner) GetBackendInfo() simulator.BackendInfo {
	return simulator.BackendInfo{
		Name:        "Itsu Cross-Check Simulator",
		Version:     "v0.0.3",
		Description: "Backend using github.com/itsubaki/q for kernel cross-validation",
		Vendor:      "itsubaki",
		Capabilities: map[string]bool{
			"metrics_collection": true,
		},
	}
}

// ValidateCircuit implements simulator.ValidatingRunner.
func (r *Runner) ValidateCircuit(c *circuit.Circuit) error {
	sim := q.New()
	_ = sim.ZeroWith(c.NumQubits())
	for i, g := range c.Gates() {
		if g.IsMeasurement() {
			if g.Basis() != state.BasisComputational {
				return fmt.Errorf("itsu: unsupported measurement basis %s (op %d)", g.Basis(), i)
			}
			continue
		}
		if !supported(g) {
			return fmt.Errorf("itsu: unsupported gate %T with %d controls (op %d)", g.Operator(), len(g.Controls()), i)
		}
	}
	return nil
}

func supported(g circuit.Gate) bool {
	op := g.Operator()
	nc := len(g.Controls())
	switch op {
	case operator.H(), operator.Y(), operator.S():
		return nc == 0
	case operator.X(), operator.CNOT(), operator.Toffoli():
		return nc <= 2
	case operator.Z():
		return nc <= 1
	case operator.Swap():
		return nc <= 1
	}
	return false
}

// GetMetrics implements simulator.MetricsCollector.
func (r *Runner) GetMetrics() simulator.ExecutionMetrics {
	totalExec := r.metrics.totalExecutions.Load()
	totalTimeNs := r.metrics.totalTime.Load()

	var avgTime time.Duration
	if totalExec > 0 {
		avgTime = time.Duration(totalTimeNs / totalExec)
	}

	return simulator.ExecutionMetrics{
		TotalExecutions: totalExec,
		SuccessfulRuns:  r.metrics.successfulRuns.Load(),
		FailedRuns:      r.metrics.failedRuns.Load(),
		AverageTime:     avgTime,
		TotalTime:       time.Duration(totalTimeNs),
	}
}

// ResetMetrics implements simulator.MetricsCollector.
func (r *Runner) ResetMetrics() {
	r.metrics.totalExecutions.Store(0)
	r.metrics.successfulRuns.Store(0)
	r.metrics.failedRuns.Store(0)
	r.metrics.totalTime.Store(0)
}

func init() {
	simulator.MustRegisterRunner("itsu", func() simulator.OneShotRunner {
		return NewRunner()
	})
}

var _ simulator.OneShotRunner = (*Runner)(nil)
