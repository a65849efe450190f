package operator

import (
	"runtime"
	"sync"

	"github.com/qleap/qleap/qc/accel"
	"github.com/qleap/qleap/qc/state"
)

// Backend selection thresholds, in qubits. Below ParallelThresholdQubits
// a kernel runs the plain sequential loop; from there the pair space is
// fanned out over a worker pool; from AccelThresholdQubits the kernel is
// offloaded when the accelerator is compiled in.
const (
	ParallelThresholdQubits = 10
	AccelThresholdQubits    = 15
)

// pairTransform maps the amplitude pair (a0, a1) at (i, i|1<<t) to its
// replacement.
type pairTransform func(a0, a1 complex128) (complex128, complex128)

// diagTransform maps one amplitude given the target bit of its index.
type diagTransform func(bit int, a complex128) complex128

// accelSpec names the device kernel a dispatch may offload to. ok=false
// means the kernel has no device routine and tops out at the parallel
// tier.
type accelSpec struct {
	kind accel.KernelType
	args accel.KernelArgs
	ok   bool
}

func noAccel() accelSpec { return accelSpec{} }

// useAccel reports whether this dispatch goes to the device.
func (a accelSpec) useAccel(numQubits int) bool {
	return a.ok && numQubits >= AccelThresholdQubits && accel.Enabled()
}

// chunked splits [0, n) across the worker pool. Writes of distinct body
// invocations never alias, so no locking is needed; the only
// coordination is the join.
func chunked(n int, body func(lo, hi int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		body(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			body(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// applyPair runs the canonical pair loop: for each of the 2^(n-1) basis
// indices with target bit 0, replace the pair (i, i|1<<t) by f of it,
// wherever the control predicate holds.
func applyPair(s *state.State, target int, controls []int, f pairTransform, acc accelSpec) (*state.State, error) {
	n := s.NumQubits()
	in := s.Amplitudes()

	if acc.useAccel(n) {
		out, err := accel.Run(acc.kind, in, n, target, controls, acc.args)
		if err != nil {
			return nil, err
		}
		return state.FromAmplitudesUnchecked(out), nil
	}

	out := make([]complex128, len(in))
	copy(out, in)

	pairs := len(in) / 2
	body := func(lo, hi int) {
		for k := lo; k < hi; k++ {
			i0 := (k>>target)<<(target+1) | (k & (1<<target - 1))
			if !controlsSet(i0, controls) {
				continue
			}
			i1 := i0 | 1<<target
			out[i0], out[i1] = f(in[i0], in[i1])
		}
	}

	if n >= ParallelThresholdQubits {
		chunked(pairs, body)
	} else {
		body(0, pairs)
	}
	return state.FromAmplitudesUnchecked(out), nil
}

// applyDiagonal runs the Z-shaped loop: every basis index keeps or scales
// its own amplitude depending on the target bit, wherever the control
// predicate holds.
func applyDiagonal(s *state.State, target int, controls []int, f diagTransform, acc accelSpec) (*state.State, error) {
	n := s.NumQubits()
	in := s.Amplitudes()

	if acc.useAccel(n) {
		out, err := accel.Run(acc.kind, in, n, target, controls, acc.args)
		if err != nil {
			return nil, err
		}
		return state.FromAmplitudesUnchecked(out), nil
	}

	out := make([]complex128, len(in))
	copy(out, in)

	body := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if !controlsSet(i, controls) {
				continue
			}
			out[i] = f((i>>target)&1, in[i])
		}
	}

	if n >= ParallelThresholdQubits {
		chunked(len(in), body)
	} else {
		body(0, len(in))
	}
	return state.FromAmplitudesUnchecked(out), nil
}

// applySwapPairs exchanges amplitudes across two target bits. Each pair
// with differing bits is visited once through its (t1=1, t2=0)
// representative; controls are equal across the pair since they cannot
// overlap the targets.
func applySwapPairs(s *state.State, t1, t2 int, controls []int, acc accelSpec) (*state.State, error) {
	n := s.NumQubits()
	in := s.Amplitudes()

	if acc.useAccel(n) {
		out, err := accel.Run(acc.kind, in, n, t1, controls, acc.args)
		if err != nil {
			return nil, err
		}
		return state.FromAmplitudesUnchecked(out), nil
	}

	out := make([]complex128, len(in))
	copy(out, in)

	m1, m2 := 1<<t1, 1<<t2
	body := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if i&m1 != 0 && i&m2 == 0 && controlsSet(i, controls) {
				j := i&^m1 | m2
				out[i], out[j] = in[j], in[i]
			}
		}
	}

	if n >= ParallelThresholdQubits {
		chunked(len(in), body)
	} else {
		body(0, len(in))
	}
	return state.FromAmplitudesUnchecked(out), nil
}
