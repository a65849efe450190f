//go:build !noaccel

package accel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKernelNames(t *testing.T) {
	assert.Equal(t, "hadamard", KernelHadamard.Name())
	assert.Equal(t, "swap", KernelSwap.Name())
	assert.Equal(t, "unknown", KernelType(99).Name())
}

func TestRunHadamard(t *testing.T) {
	in := []complex128{1, 0}
	out, err := Run(KernelHadamard, in, 1, 0, nil, KernelArgs{})
	require.NoError(t, err)

	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, real(out[0]), 1e-6)
	assert.InDelta(t, inv, real(out[1]), 1e-6)

	// input untouched
	assert.Equal(t, complex128(1), in[0])
}

func TestRunPauliYPhases(t *testing.T) {
	out, err := Run(KernelPauliY, []complex128{1, 0}, 1, 0, nil, KernelArgs{})
	require.NoError(t, err)
	assert.InDelta(t, 1, imag(out[1]), 1e-6)
	assert.InDelta(t, 0, real(out[1]), 1e-6)
}

func TestRunSPhaseSign(t *testing.T) {
	// S then S† is the identity on |1⟩
	mid, err := Run(KernelSPhase, []complex128{0, 1}, 1, 0, nil, KernelArgs{Sign: 1})
	require.NoError(t, err)
	assert.InDelta(t, 1, imag(mid[1]), 1e-6)

	back, err := Run(KernelSPhase, mid, 1, 0, nil, KernelArgs{Sign: -1})
	require.NoError(t, err)
	assert.InDelta(t, 1, real(back[1]), 1e-6)
	assert.InDelta(t, 0, imag(back[1]), 1e-6)
}

func TestRunRespectsControls(t *testing.T) {
	// control qubit 1 is 0: the pair must pass through untouched
	in := []complex128{1, 0, 0, 0}
	out, err := Run(KernelHadamard, in, 2, 0, []int{1}, KernelArgs{})
	require.NoError(t, err)
	assert.InDelta(t, 1, real(out[0]), 1e-6)
	assert.InDelta(t, 0, real(out[1]), 1e-6)

	// control set: pair transforms
	in = []complex128{0, 0, 1, 0}
	out, err = Run(KernelHadamard, in, 2, 0, []int{1}, KernelArgs{})
	require.NoError(t, err)
	inv := 1 / math.Sqrt2
	assert.InDelta(t, inv, real(out[2]), 1e-6)
	assert.InDelta(t, inv, real(out[3]), 1e-6)
}

func TestRunSwap(t *testing.T) {
	in := []complex128{0, 1, 0, 0} // qubit 0 set
	out, err := Run(KernelSwap, in, 2, 0, nil, KernelArgs{Q2: 1})
	require.NoError(t, err)
	assert.InDelta(t, 1, real(out[2]), 1e-6)
	assert.InDelta(t, 0, real(out[1]), 1e-6)
}

func TestBuffersGrowMonotonically(t *testing.T) {
	c, err := acquire()
	require.NoError(t, err)

	c.mu.Lock()
	big := c.ensureStateBuffer(1 << 8)
	bigCap := cap(big)
	small := c.ensureStateBuffer(1 << 4)
	c.mu.Unlock()

	assert.Equal(t, 2<<4, len(small))
	assert.Equal(t, bigCap, cap(small), "shrinking must reuse the grown buffer")
}

func TestEnabled(t *testing.T) {
	assert.True(t, Enabled())
}
