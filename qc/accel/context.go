//go:build !noaccel

package accel

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/qleap/qleap/qc/qerr"
)

// Context owns the device buffers. There is exactly one per process,
// created at first use; concurrent offloads serialize on its mutex, and
// buffers grow monotonically and are never shrunk.
type Context struct {
	mu       sync.Mutex
	stateBuf []float32 // interleaved re,im pairs
	ctrlBuf  []int32
}

var (
	ctxOnce sync.Once
	ctx     *Context
	ctxErr  error
)

// Enabled reports whether the accelerator is compiled in.
func Enabled() bool { return true }

func acquire() (*Context, error) {
	ctxOnce.Do(func() {
		ctx = &Context{}
	})
	if ctxErr != nil {
		// Init failed once; every later offload reports the same error.
		return nil, ctxErr
	}
	return ctx, nil
}

// ensureStateBuffer resizes the amplitude buffer to hold dim complex
// values. Grow-only.
func (c *Context) ensureStateBuffer(dim int) []float32 {
	if cap(c.stateBuf) < 2*dim {
		c.stateBuf = make([]float32, 2*dim)
	}
	c.stateBuf = c.stateBuf[:2*dim]
	return c.stateBuf
}

func (c *Context) ensureControlBuffer(n int) []int32 {
	if n == 0 {
		n = 1 // the device always binds a control buffer
	}
	if cap(c.ctrlBuf) < n {
		c.ctrlBuf = make([]int32, n)
	}
	c.ctrlBuf = c.ctrlBuf[:n]
	return c.ctrlBuf
}

// Run copies amps to the device, invokes the named kernel over its
// work-item space, and reads the transformed vector back. The input slice
// is not modified.
func Run(kind KernelType, amps []complex128, numQubits, target int, controls []int, args KernelArgs) ([]complex128, error) {
	c, err := acquire()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	dim := len(amps)
	buf := c.ensureStateBuffer(dim)
	for i, a := range amps {
		buf[2*i] = float32(real(a))
		buf[2*i+1] = float32(imag(a))
	}
	ctrl := c.ensureControlBuffer(len(controls))
	for i, q := range controls {
		ctrl[i] = int32(q)
	}
	nc := len(controls)

	switch kind {
	case KernelHadamard, KernelPauliX, KernelPauliY, KernelRotateX, KernelRotateY:
		work := dim / 2
		runPairKernel(kind, buf, work, numQubits, target, ctrl[:nc], args)
	case KernelPauliZ, KernelSPhase, KernelPhaseShift, KernelRotateZ:
		runDiagonalKernel(kind, buf, dim, target, ctrl[:nc], args)
	case KernelSwap:
		runSwapKernel(buf, dim, target, int(args.Q2), ctrl[:nc])
	default:
		return nil, &qerr.AcceleratorError{Msg: fmt.Sprintf("unknown kernel %q", kind.Name())}
	}

	out := make([]complex128, dim)
	for i := range out {
		out[i] = complex(float64(buf[2*i]), float64(buf[2*i+1]))
	}
	return out, nil
}

// controlsSet mirrors the device-side predicate: every listed control bit
// of index i must be 1.
func controlsSet(i int, controls []int32) bool {
	for _, q := range controls {
		if (i>>q)&1 == 0 {
			return false
		}
	}
	return true
}

// parallelFor executes work items on all cores, the device's analogue of
// a global work size.
func parallelFor(n int, body func(lo, hi int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		body(0, n)
		return
	}
	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
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

// runPairKernel handles the kernels that mix each pair (i, i|1<<t).
// Work item k enumerates the dim/2 indices with target bit 0.
func runPairKernel(kind KernelType, buf []float32, work, numQubits, target int, controls []int32, args KernelArgs) {
	invSqrt2 := float32(0.7071067811865476)
	parallelFor(work, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			i0 := (k>>target)<<(target+1) | (k & (1<<target - 1))
			if !controlsSet(i0, controls) {
				continue
			}
			i1 := i0 | 1<<target
			re0, im0 := buf[2*i0], buf[2*i0+1]
			re1, im1 := buf[2*i1], buf[2*i1+1]
			switch kind {
			case KernelHadamard:
				buf[2*i0] = invSqrt2 * (re0 + re1)
				buf[2*i0+1] = invSqrt2 * (im0 + im1)
				buf[2*i1] = invSqrt2 * (re0 - re1)
				buf[2*i1+1] = invSqrt2 * (im0 - im1)
			case KernelPauliX:
				buf[2*i0], buf[2*i0+1] = re1, im1
				buf[2*i1], buf[2*i1+1] = re0, im0
			case KernelPauliY:
				// new0 = -i·a1, new1 = i·a0
				buf[2*i0], buf[2*i0+1] = im1, -re1
				buf[2*i1], buf[2*i1+1] = -im0, re0
			case KernelRotateX:
				// (cos·a0 - i·sin·a1, -i·sin·a0 + cos·a1)
				cos, sin := args.Cos, args.Sin
				buf[2*i0] = cos*re0 + sin*im1
				buf[2*i0+1] = cos*im0 - sin*re1
				buf[2*i1] = sin*im0 + cos*re1
				buf[2*i1+1] = -sin*re0 + cos*im1
			case KernelRotateY:
				cos, sin := args.Cos, args.Sin
				buf[2*i0] = cos*re0 - sin*re1
				buf[2*i0+1] = cos*im0 - sin*im1
				buf[2*i1] = sin*re0 + cos*re1
				buf[2*i1+1] = sin*im0 + cos*im1
			}
		}
	})
}

// runDiagonalKernel handles the phase-only kernels; work item space is
// the whole vector.
func runDiagonalKernel(kind KernelType, buf []float32, dim, target int, controls []int32, args KernelArgs) {
	parallelFor(dim, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if !controlsSet(i, controls) {
				continue
			}
			bit := (i >> target) & 1
			re, im := buf[2*i], buf[2*i+1]
			switch kind {
			case KernelPauliZ:
				if bit == 1 {
					buf[2*i], buf[2*i+1] = -re, -im
				}
			case KernelSPhase:
				// multiply by sign·i on the bit-1 half
				if bit == 1 {
					buf[2*i], buf[2*i+1] = -args.Sign*im, args.Sign*re
				}
			case KernelPhaseShift:
				if bit == 1 {
					buf[2*i] = args.Cos*re - args.Sin*im
					buf[2*i+1] = args.Sin*re + args.Cos*im
				}
			case KernelRotateZ:
				// bit 0: e^{-iα}, bit 1: e^{+iα}
				sin := args.Sin
				if bit == 0 {
					sin = -sin
				}
				buf[2*i] = args.Cos*re - sin*im
				buf[2*i+1] = sin*re + args.Cos*im
			}
		}
	})
}

// runSwapKernel exchanges amplitudes across the two target bits. Each
// pair is visited once via the (bit1=1, bit2=0) representative.
func runSwapKernel(buf []float32, dim, t1, t2 int, controls []int32) {
	m1, m2 := 1<<t1, 1<<t2
	parallelFor(dim, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if i&m1 != 0 && i&m2 == 0 && controlsSet(i, controls) {
				j := i&^m1 | m2
				buf[2*i], buf[2*j] = buf[2*j], buf[2*i]
				buf[2*i+1], buf[2*j+1] = buf[2*j+1], buf[2*i+1]
			}
		}
	})
}
