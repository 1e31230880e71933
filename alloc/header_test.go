package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T) item {
	t.Helper()
	buf := make([]byte, 4*blockSize)
	return item(uintptr(unsafe.Pointer(&buf[0])))
}

func TestItem_SizeRoundTrips(t *testing.T) {
	it := newTestItem(t)
	it.SetSize(42)
	assert.Equal(t, uintptr(42), it.Size())
}

func TestItem_FlagsIndependentOfSize(t *testing.T) {
	it := newTestItem(t)
	it.SetSize(7)
	it.SetInUse(true)
	it.SetLRBit(true)
	it.SetInhBit(true)

	assert.Equal(t, uintptr(7), it.Size())
	assert.True(t, it.InUse())
	assert.True(t, it.LRBit())
	assert.True(t, it.InhBit())

	it.SetSize(99)
	assert.True(t, it.InUse())
	assert.True(t, it.LRBit())
	assert.True(t, it.InhBit())
	assert.Equal(t, uintptr(99), it.Size())
}

func TestItem_ClearingOneFlagLeavesOthers(t *testing.T) {
	it := newTestItem(t)
	it.SetInUse(true)
	it.SetLRBit(true)
	it.SetInhBit(true)

	it.SetInUse(false)
	assert.False(t, it.InUse())
	assert.True(t, it.LRBit())
	assert.True(t, it.InhBit())
}

func TestItem_PrevNextRoundTrip(t *testing.T) {
	a := newTestItem(t)
	b := newTestItem(t)

	a.SetNext(b)
	a.SetPrev(0)
	require.Equal(t, b, a.Next())
	assert.False(t, a.Prev().valid())
}

func TestItem_AreaAndItemFromArea(t *testing.T) {
	it := newTestItem(t)
	area := it.Area()
	assert.Equal(t, uintptr(it)+headerSize, uintptr(area))
	assert.Equal(t, it, itemFromArea(area))
}

func TestBlocksFor(t *testing.T) {
	assert.Equal(t, uintptr(1), blocksFor(0))
	assert.Equal(t, uintptr(2), blocksFor(1))
	assert.Equal(t, uintptr(2), blocksFor(8))
	assert.Equal(t, uintptr(3), blocksFor(9))
}

func TestItem_ZeroValueInvalid(t *testing.T) {
	var it item
	assert.False(t, it.valid())
}
