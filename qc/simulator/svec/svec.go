// Package svec is the simulator backend running on this repo's own
// state-vector core. It is registered as "svec" and as the "default"
// runner.
package svec

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/qleap/qleap/qc/circuit"
	"github.com/qleap/qleap/qc/simulator"
	"github.com/qleap/qleap/qc/state"
)

// MaxQubits bounds circuit size for this backend; beyond it a single
// amplitude vector stops being a reasonable in-memory object.
const MaxQubits = 26

// Runner executes circuits on the state-vector core.
type Runner struct {
	mu      sync.RWMutex
	sampler state.Sampler
	metrics runnerMetrics
}

type runnerMetrics struct {
	totalExecutions atomic.Int64
	successfulRuns  atomic.Int64
	failedRuns      atomic.Int64
	totalTime       atomic.Int64 // nanoseconds
	lastError       atomic.Value // string
	lastRunTime     atomic.Value // time.Time
}

// lockedSampler makes a seeded *rand.Rand safe for the shot workers.
type lockedSampler struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedSampler) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewRunner creates a runner drawing from the shared math/rand source.
func NewRunner() *Runner {
	r := &Runner{sampler: state.DefaultSampler()}
	r.metrics.lastRunTime.Store(time.Time{})
	r.metrics.lastError.Store("")
	return r
}

// NewSeededRunner creates a runner with a reproducible random stream.
func NewSeededRunner(seed int64) *Runner {
	r := NewRunner()
	r.sampler = &lockedSampler{r: rand.New(rand.NewSource(seed))}
	return r
}

// RunOnce implements simulator.OneShotRunner.
func (r *Runner) RunOnce(c *circuit.Circuit) (string, error) {
	return r.RunOnceWithContext(context.Background(), c)
}

// RunOnceWithContext implements simulator.ContextualRunner. The circuit
// itself runs without suspension points; the context is checked once up
// front.
func (r *Runner) RunOnceWithContext(ctx context.Context, c *circuit.Circuit) (string, error) {
	start := time.Now()
	r.metrics.totalExecutions.Add(1)
	r.metrics.lastRunTime.Store(start)
	defer func() {
		r.metrics.totalTime.Add(time.Since(start).Nanoseconds())
	}()

	select {
	case <-ctx.Done():
		r.metrics.failedRuns.Add(1)
		r.metrics.lastError.Store(ctx.Err().Error())
		return "", ctx.Err()
	default:
	}

	r.mu.RLock()
	sampler := r.sampler
	r.mu.RUnlock()

	_, results, err := c.ExecuteMeasured(state.Zero(c.NumQubits()), sampler)
	if err != nil {
		r.metrics.failedRuns.Add(1)
		r.metrics.lastError.Store(err.Error())
		return "", err
	}

	r.metrics.successfulRuns.Add(1)
	r.metrics.lastError.Store("")
	return formatOutcomes(c.NumQubits(), results), nil
}

// formatOutcomes flattens measurement results into a bit-string over the
// measured qubits, most-significant qubit first. Re-measured qubits keep
// their latest outcome.
func formatOutcomes(numQubits int, results []state.MeasurementResult) string {
	bits := make(map[int]int)
	for _, res := range results {
		for i, q := range res.Indices {
			bits[q] = res.Outcomes[i]
		}
	}
	if len(bits) == 0 {
		return "0"
	}
	var sb strings.Builder
	for q := numQubits - 1; q >= 0; q-- {
		if b, ok := bits[q]; ok {
			sb.WriteByte('0' + byte(b))
		}
	}
	return sb.String()
}

// GetBackendInfo implements simulator.BackendProvider.
func (r *Runner) GetBackendInfo() simulator.BackendInfo {
	return simulator.BackendInfo{
		Name:        "State-Vector Simulator",
		Version:     "v1.0.0",
		Description: "Tiered statevector backend (sequential / parallel / accelerator)",
		Vendor:      "qleap",
		Capabilities: map[string]bool{
			"context_support":    true,
			"batch_execution":    true,
			"circuit_validation": true,
			"metrics_collection": true,
			"seedable":           true,
		},
	}
}

// ValidateCircuit implements simulator.ValidatingRunner.
func (r *Runner) ValidateCircuit(c *circuit.Circuit) error {
	if c.NumQubits() > MaxQubits {
		return fmt.Errorf("svec: circuit has too many qubits: %d (max %d)", c.NumQubits(), MaxQubits)
	}
	return nil
}

// RunBatch implements simulator.BatchRunner.
func (r *Runner) RunBatch(c *circuit.Circuit, shots int) ([]string, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("svec: shots must be positive, got %d", shots)
	}
	results := make([]string, shots)
	for i := range shots {
		out, err := r.RunOnce(c)
		if err != nil {
			return nil, fmt.Errorf("svec: shot %d failed: %w", i, err)
		}
		results[i] = out
	}
	return results, nil
}

// GetMetrics implements simulator.MetricsCollector.
func (r *Runner) GetMetrics() simulator.ExecutionMetrics {
	totalExec := r.metrics.totalExecutions.Load()
	totalTimeNs := r.metrics.totalTime.Load()

	var avgTime time.Duration
	if totalExec > 0 {
		avgTime = time.Duration(totalTimeNs / totalExec)
	}

	lastErr, _ := r.metrics.lastError.Load().(string)
	lastRun, _ := r.metrics.lastRunTime.Load().(time.Time)

	return simulator.ExecutionMetrics{
		TotalExecutions: totalExec,
		SuccessfulRuns:  r.metrics.successfulRuns.Load(),
		FailedRuns:      r.metrics.failedRuns.Load(),
		AverageTime:     avgTime,
		TotalTime:       time.Duration(totalTimeNs),
		LastError:       lastErr,
		LastRunTime:     lastRun,
	}
}

// ResetMetrics implements simulator.MetricsCollector.
func (r *Runner) ResetMetrics() {
	r.metrics.totalExecutions.Store(0)
	r.metrics.successfulRuns.Store(0)
	r.metrics.failedRuns.Store(0)
	r.metrics.totalTime.Store(0)
	r.metrics.lastError.Store("")
	r.metrics.lastRunTime.Store(time.Time{})
}

func init() {
	simulator.MustRegisterRunner("svec", func() simulator.OneShotRunner {
		return NewRunner()
	})
	simulator.MustRegisterRunner("default", func() simulator.OneShotRunner {
		return NewRunner()
	})
}

var _ simulator.OneShotRunner = (*Runner)(nil)
