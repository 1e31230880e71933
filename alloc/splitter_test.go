package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSplittableItem returns an unlinked, free item of size blocks, backed
// by its own buffer so that byte offsets computed from "it" stay within
// bounds for every descendant the splitter can produce. Like a real chunk,
// the buffer ends with an in-use sentinel so that coalescing stops at the
// root item instead of reading past the buffer.
func newSplittableItem(t *testing.T, blocks uintptr) item {
	t.Helper()
	buf := make([]byte, (blocks+1)*blockSize)
	it := item(uintptr(unsafe.Pointer(&buf[0])))
	it.SetSize(blocks)
	it.SetInUse(false)
	it.SetLRBit(false)
	it.SetInhBit(false)

	sentinel := item(uintptr(it) + blocks*blockSize)
	sentinel.SetSize(0)
	sentinel.SetLRBit(true)
	sentinel.SetInUse(true)
	return it
}

func TestSplit_NoSplitNeeded_ReturnsSameItem(t *testing.T) {
	ct := newClassTable(0)
	it := newSplittableItem(t, seed3)

	final, i := split(ct, 3, it, seed3)
	assert.Equal(t, it, final)
	assert.Equal(t, 3, i)
}

func TestSplit_DrillsDownToSatisfyingClass(t *testing.T) {
	ct := newClassTable(0)
	for ct.len() < 8 {
		ct.extendOnce()
	}
	it := newSplittableItem(t, ct.cells[6].size)

	final, i := split(ct, 6, it, 1)

	require.GreaterOrEqual(t, ct.cells[i].size, uintptr(1))
	assert.Equal(t, ct.cells[i].size, final.Size())
	assert.False(t, final.InUse())
}

func TestSplit_LeftoverBuddyLandsOnCorrectFreeList(t *testing.T) {
	ct := newClassTable(0)
	for ct.len() < 8 {
		ct.extendOnce()
	}
	it := newSplittableItem(t, ct.cells[6].size)

	_, _ = split(ct, 6, it, 1)

	for k, c := range ct.cells {
		for cur := c.head; cur.valid(); cur = cur.Next() {
			assert.Equalf(t, c.size, cur.Size(), "item on class %d free list has wrong size", k)
		}
	}
}
