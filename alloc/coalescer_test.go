package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSplitThenCoalesce_ReassemblesOriginalItem exercises split and
// coalesce together: splitting a chunk-sized item all the way down and
// then freeing every resulting piece must merge back into a single item
// of the original size at the original address (spec.md §4.6's "undoes
// splitting" property).
func TestSplitThenCoalesce_ReassemblesOriginalItem(t *testing.T) {
	ct := newClassTable(0)
	for ct.len() < 8 {
		ct.extendOnce()
	}
	const rootClass = 6
	rootSize := ct.cells[rootClass].size
	root := newSplittableItem(t, rootSize)

	final, finalClass := split(ct, rootClass, root, 1)
	final.SetInUse(false)
	ct.cells[finalClass].insert(final)

	coalesce(ct, finalClass)

	require.True(t, ct.cells[rootClass].head.valid())
	merged := ct.cells[rootClass].head
	assert.Equal(t, root, merged)
	assert.Equal(t, rootSize, merged.Size())
	assert.False(t, ct.cells[rootClass].head.Next().valid())

	for k, c := range ct.cells {
		if k == rootClass {
			continue
		}
		assert.Falsef(t, c.head.valid(), "class %d still has a free item after full coalesce", k)
	}
}

func TestCoalesce_StopsAtInUseBuddy(t *testing.T) {
	ct := newClassTable(0)
	for ct.len() < 8 {
		ct.extendOnce()
	}
	const rootClass = 6
	root := newSplittableItem(t, ct.cells[rootClass].size)

	final, finalClass := split(ct, rootClass, root, 1)
	// Leave final itself marked in-use (as a live allocation would be);
	// only its already-banked sibling buddies are free.
	final.SetInUse(true)

	for k, c := range ct.cells {
		if k == finalClass || !c.head.valid() {
			continue
		}
		coalesce(ct, k)
	}

	assert.False(t, ct.cells[rootClass].head.valid())
}
