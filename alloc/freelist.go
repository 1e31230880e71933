package alloc

// cell is one size class's free list: a fixed block count and the head of
// a doubly-linked list of currently-free items of that size (spec.md §3.6).
type cell struct {
	size uintptr
	head item
}

// insert prepends it to the cell's free list. O(1). Does not touch
// it.InUse — callers are responsible for having cleared it already.
func (c *cell) insert(it item) {
	it.SetPrev(0)
	it.SetNext(c.head)
	if c.head.valid() {
		c.head.SetPrev(it)
	}
	c.head = it
}

// takeFirst removes and returns the head of the cell's free list. The
// caller must ensure the list is non-empty.
func (c *cell) takeFirst() item {
	it := c.head
	next := it.Next()
	if next.valid() {
		next.SetPrev(0)
	}
	c.head = next
	return it
}

// deleteSpecific removes it from the cell's free list if present,
// scanning by address. A no-op if it is not on this list — the coalescer
// relies on that tolerance when it calls deleteSpecific on an item it has
// just identified as free without separately verifying membership.
func (c *cell) deleteSpecific(it item) {
	cur := c.head
	for cur.valid() {
		if cur == it {
			prev, next := cur.Prev(), cur.Next()
			if prev.valid() {
				prev.SetNext(next)
			}
			if next.valid() {
				next.SetPrev(prev)
			}
			if cur == c.head {
				c.head = next
			}
			return
		}
		cur = cur.Next()
	}
}
