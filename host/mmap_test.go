package host

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmapProvider_AcquireRelease(t *testing.T) {
	p := NewMmapProvider()

	region, err := p.Acquire(4096)
	require.NoError(t, err)
	require.NotNil(t, region)

	// Page alignment, not just the 16-byte minimum the contract requires.
	assert.Equal(t, uintptr(0), uintptr(region)%4096)

	// The region must be writable and readable end-to-end.
	buf := unsafe.Slice((*byte)(region), 4096)
	for i := range buf {
		buf[i] = byte(i)
	}
	for i := range buf {
		assert.Equal(t, byte(i), buf[i])
	}

	p.Release(region, 4096)
}

func TestMmapProvider_ZeroSize(t *testing.T) {
	p := NewMmapProvider()
	_, err := p.Acquire(0)
	assert.Error(t, err)
}

func TestMmapProvider_MultipleRegionsIndependent(t *testing.T) {
	p := NewMmapProvider()

	r1, err := p.Acquire(8192)
	require.NoError(t, err)
	r2, err := p.Acquire(8192)
	require.NoError(t, err)

	assert.NotEqual(t, r1, r2)

	p.Release(r1, 8192)
	p.Release(r2, 8192)
}
