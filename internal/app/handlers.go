package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qleap/qleap/qc/builder"
	"github.com/qleap/qleap/qc/circuit"
	"github.com/qleap/qleap/qc/qasm"
	"github.com/qleap/qleap/qc/simulator"
	"github.com/qleap/qleap/qc/state"

	// Register backends with the runner registry.
	_ "github.com/qleap/qleap/qc/simulator/itsu"
	_ "github.com/qleap/qleap/qc/simulator/svec"
)

// GateRequest is one gate in a submitted circuit. Qubits carries the
// operands in the documented order (controls first for CNOT / CSWAP /
// TOFFOLI); Angle applies to the parametric families.
type GateRequest struct {
	Type   string  `json:"type"`
	Qubits []int   `json:"qubits"`
	Angle  float64 `json:"angle,omitempty"`
}

// CircuitRequest is the body of /api/execute and /api/qasm.
type CircuitRequest struct {
	Circuit struct {
		Qubits int           `json:"qubits"`
		Gates  []GateRequest `json:"gates"`
	} `json:"circuit"`
	Backend string `json:"backend"`
	Shots   int    `json:"shots"`
}

// CircuitResponse is the /api/execute reply.
type CircuitResponse struct {
	Measurements  map[string]int `json:"measurements"`
	Backend       string         `json:"backend"`
	Shots         int            `json:"shots"`
	ExecutionTime float64        `json:"execution_time_ms"`
}

var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// HealthHandler serves /health.
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		return
	}
	l.Debug().Msg("serving health endpoint")
	c.String(http.StatusOK, "OK")
}

// BackendsHandler serves /api/backends.
func (a *appServer) BackendsHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		return
	}
	l.Debug().Msg("serving backends endpoint")
	c.JSON(http.StatusOK, gin.H{"backends": simulator.ListRunners()})
}

// ExecuteCircuit serves /api/execute.
func (a *appServer) ExecuteCircuit(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		return
	}

	var req CircuitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Circuit.Qubits <= 0 || req.Circuit.Qubits > a.maxQubits {
		l.Error().Int("qubits", req.Circuit.Qubits).Msg("invalid qubit count")
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid qubit count (1-%d allowed)", a.maxQubits)})
		return
	}
	if req.Shots <= 0 || req.Shots > 100000 {
		req.Shots = a.shots
	}
	if req.Backend == "" {
		req.Backend = a.backend
	}

	circ, err := buildCircuitFromRequest(&req)
	if err != nil {
		l.Error().Err(err).Msg("building circuit failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to build circuit: " + err.Error()})
		return
	}

	runner, err := simulator.CreateRunner(req.Backend)
	if err != nil {
		l.Error().Err(err).Str("backend", req.Backend).Msg("unknown backend")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if v, ok := runner.(simulator.ValidatingRunner); ok {
		if err := v.ValidateCircuit(circ); err != nil {
			l.Error().Err(err).Msg("circuit rejected by backend")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sim := simulator.NewSimulator(simulator.SimulatorOptions{
		Shots:   req.Shots,
		Workers: a.workers,
		Runner:  runner,
	})

	start := time.Now()
	hist, err := sim.Run(circ)
	if err != nil {
		l.Error().Err(err).Str("backend", req.Backend).Msg("circuit execution failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Circuit execution failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, CircuitResponse{
		Measurements:  hist,
		Backend:       req.Backend,
		Shots:         req.Shots,
		ExecutionTime: float64(time.Since(start).Microseconds()) / 1000.0,
	})
}

// CompileQASM serves /api/qasm: same circuit body, returns the OpenQASM
// text instead of running it.
func (a *appServer) CompileQASM(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		return
	}

	var req CircuitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Circuit.Qubits <= 0 || req.Circuit.Qubits > a.maxQubits {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid qubit count (1-%d allowed)", a.maxQubits)})
		return
	}

	circ, err := buildCircuitFromRequest(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to build circuit: " + err.Error()})
		return
	}

	text, err := qasm.Emit(circ)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"qasm": text})
}

// buildCircuitFromRequest converts the JSON gate list into a circuit.
// When the request carries no measurement, every qubit is measured at
// the end so execution always yields a bit-string.
func buildCircuitFromRequest(req *CircuitRequest) (*circuit.Circuit, error) {
	b := builder.New(req.Circuit.Qubits)

	hasMeasurement := false
	for _, g := range req.Circuit.Gates {
		if err := appendGate(b, g); err != nil {
			return nil, err
		}
		if g.Type == "MEASURE" {
			hasMeasurement = true
		}
	}

	if !hasMeasurement {
		all := make([]int, req.Circuit.Qubits)
		for i := range all {
			all[i] = i
		}
		b.Measure(state.BasisComputational, all...)
	}

	return b.Build()
}

func appendGate(b *builder.Builder, g GateRequest) error {
	need := func(n int) error {
		if len(g.Qubits) != n {
			return fmt.Errorf("%s gate requires exactly %d qubit(s)", g.Type, n)
		}
		return nil
	}

	switch g.Type {
	case "H":
		if err := need(1); err != nil {
			return err
		}
		b.H(g.Qubits[0])
	case "X":
		if err := need(1); err != nil {
			return err
		}
		b.X(g.Qubits[0])
	case "Y":
		if err := need(1); err != nil {
			return err
		}
		b.Y(g.Qubits[0])
	case "Z":
		if err := need(1); err != nil {
			return err
		}
		b.Z(g.Qubits[0])
	case "ID":
		if err := need(1); err != nil {
			return err
		}
		b.ID(g.Qubits[0])
	case "S":
		if err := need(1); err != nil {
			return err
		}
		b.S(g.Qubits[0])
	case "SDG":
		if err := need(1); err != nil {
			return err
		}
		b.Sdag(g.Qubits[0])
	case "T":
		if err := need(1); err != nil {
			return err
		}
		b.T(g.Qubits[0])
	case "TDG":
		if err := need(1); err != nil {
			return err
		}
		b.Tdag(g.Qubits[0])
	case "P":
		if err := need(1); err != nil {
			return err
		}
		b.P(g.Qubits[0], g.Angle)
	case "RX":
		if err := need(1); err != nil {
			return err
		}
		b.RX(g.Qubits[0], g.Angle)
	case "RY":
		if err := need(1); err != nil {
			return err
		}
		b.RY(g.Qubits[0], g.Angle)
	case "RZ":
		if err := need(1); err != nil {
			return err
		}
		b.RZ(g.Qubits[0], g.Angle)
	case "CNOT":
		if err := need(2); err != nil {
			return err
		}
		b.CNOT(g.Qubits[0], g.Qubits[1])
	case "CZ":
		if err := need(2); err != nil {
			return err
		}
		b.CZ([]int{g.Qubits[1]}, []int{g.Qubits[0]})
	case "SWAP":
		if err := need(2); err != nil {
			return err
		}
		b.SWAP(g.Qubits[0], g.Qubits[1])
	case "CSWAP":
		if err := need(3); err != nil {
			return err
		}
		b.CSwap(g.Qubits[0], g.Qubits[1], g.Qubits[2])
	case "TOFFOLI":
		if err := need(3); err != nil {
			return err
		}
		b.Toffoli(g.Qubits[0], g.Qubits[1], g.Qubits[2])
	case "MEASURE":
		if len(g.Qubits) == 0 {
			return fmt.Errorf("MEASURE requires at least 1 qubit")
		}
		b.Measure(state.BasisComputational, g.Qubits...)
	default:
		return fmt.Errorf("unsupported gate type: %s", g.Type)
	}
	return nil
}
