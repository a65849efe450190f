package operator

import (
	"github.com/qleap/qleap/qc/qerr"
	"github.com/qleap/qleap/qc/state"
)

// validateQubits is the shared pre-check every kernel runs before
// touching amplitudes: target arity, index ranges, control/target
// overlap, and (for multi-target operators) duplicate targets.
func validateQubits(s *state.State, targets, controls []int, expectedTargets int) error {
	if len(targets) != expectedTargets {
		return &qerr.InvalidNumberOfQubitsError{Got: len(targets)}
	}

	numQubits := s.NumQubits()
	for _, t := range targets {
		if t < 0 || t >= numQubits {
			return &qerr.InvalidQubitIndexError{Index: t, NumQubits: numQubits}
		}
	}

	for _, c := range controls {
		if c < 0 || c >= numQubits {
			return &qerr.InvalidQubitIndexError{Index: c, NumQubits: numQubits}
		}
		for _, t := range targets {
			if c == t {
				return &qerr.OverlappingQubitsError{Control: c, Target: t}
			}
		}
	}

	if expectedTargets > 1 {
		for i := 0; i < len(targets); i++ {
			for j := i + 1; j < len(targets); j++ {
				if targets[i] == targets[j] {
					return &qerr.InvalidQubitIndexError{Index: targets[i], NumQubits: numQubits}
				}
			}
		}
	}

	return nil
}

// duplicateControl returns the first qubit listed twice in controls.
func duplicateControl(controls []int) (int, bool) {
	for i := 0; i < len(controls); i++ {
		for j := i + 1; j < len(controls); j++ {
			if controls[i] == controls[j] {
				return controls[i], true
			}
		}
	}
	return 0, false
}

// controlsSet reports whether every control bit of basis index i is 1.
// An empty control list means unconditional application.
func controlsSet(i int, controls []int) bool {
	for _, q := range controls {
		if (i>>q)&1 == 0 {
			return false
		}
	}
	return true
}
