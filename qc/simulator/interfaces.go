package simulator

import (
	"context"
	"time"

	"github.com/qleap/qleap/qc/circuit"
)

// BackendInfo provides metadata about a backend runner.
type BackendInfo struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Vendor       string          `json:"vendor"`
	Capabilities map[string]bool `json:"capabilities"`
}

// ExecutionMetrics contains performance and execution statistics.
type ExecutionMetrics struct {
	TotalExecutions int64         `json:"total_executions"`
	SuccessfulRuns  int64         `json:"successful_runs"`
	FailedRuns      int64         `json:"failed_runs"`
	AverageTime     time.Duration `json:"average_time"`
	TotalTime       time.Duration `json:"total_time"`
	LastError       string        `json:"last_error,omitempty"`
	LastRunTime     time.Time     `json:"last_run_time"`
}

// Optional runner capabilities. Implementations pick what fits; callers
// discover support with a type assertion or the helpers below.

// BackendProvider provides information about the backend.
type BackendProvider interface {
	GetBackendInfo() BackendInfo
}

// ContextualRunner supports context-based execution with cancellation.
type ContextualRunner interface {
	RunOnceWithContext(ctx context.Context, c *circuit.Circuit) (string, error)
}

// MetricsCollector provides execution metrics and statistics.
type MetricsCollector interface {
	GetMetrics() ExecutionMetrics
	ResetMetrics()
}

// ValidatingRunner can validate circuits before execution.
type ValidatingRunner interface {
	ValidateCircuit(c *circuit.Circuit) error
}

// BatchRunner supports executing many shots in one call.
type BatchRunner interface {
	RunBatch(c *circuit.Circuit, shots int) ([]string, error)
}

// SupportsContext checks if a runner supports context-based execution.
func SupportsContext(runner OneShotRunner) bool {
	_, ok := runner.(ContextualRunner)
	return ok
}

// SupportsMetrics checks if a runner provides execution metrics.
func SupportsMetrics(runner OneShotRunner) bool {
	_, ok := runner.(MetricsCollector)
	return ok
}

// SupportsValidation checks if a runner can validate circuits.
func SupportsValidation(runner OneShotRunner) bool {
	_, ok := runner.(ValidatingRunner)
	return ok
}

// GetBackendInfo safely gets backend information if available.
func GetBackendInfo(runner OneShotRunner) *BackendInfo {
	if provider, ok := runner.(BackendProvider); ok {
		info := provider.GetBackendInfo()
		return &info
	}
	return nil
}
