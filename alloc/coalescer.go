package alloc

// buddyOf computes the buddy of it, currently filed at class i, and the
// class index that buddy would occupy if free (spec.md §3.5). The "+3/-3"
// offsets fall out of the recurrence S[k] = S[k-1] + S[k-4]: a class-k left
// child comes from a class-(k+4) parent, whose right child is class k+3.
func buddyOf(t *classTable, it item, i int) (item, int) {
	if !it.LRBit() { // left buddy
		ibuddy := i + 3
		buddy := item(uintptr(it) + it.Size()*blockSize)
		return buddy, ibuddy
	}
	ibuddy := i - 3
	buddySize := t.cells[ibuddy].size
	buddy := item(uintptr(it) - buddySize*blockSize)
	return buddy, ibuddy
}

// coalesce merges the item just inserted into cell i with its free
// buddies, walking upward until it meets an in-use buddy (ultimately a
// chunk's sentinel, which is always in-use and never on a free list —
// spec.md §4.6).
func coalesce(t *classTable, i int) {
	for {
		it := t.cells[i].head
		buddy, ibuddy := buddyOf(t, it, i)

		// The second test rejects a buddy that has itself been partially
		// split: its header then reports a smaller class than cell
		// ibuddy expects.
		if buddy.InUse() || buddy.Size() != t.cells[ibuddy].size {
			return
		}

		t.cells[i].deleteSpecific(it)
		t.cells[ibuddy].deleteSpecific(buddy)

		var left, right item
		var newI int
		if !it.LRBit() {
			left, right = it, buddy
			newI = i + 4
		} else {
			left, right = buddy, it
			newI = i + 1
		}

		parent := left
		parent.SetLRBit(left.InhBit())
		parent.SetInhBit(right.InhBit())
		parent.SetSize(t.cells[newI].size)
		parent.SetInUse(false)

		i = newI
		t.cells[i].insert(parent)
	}
}
