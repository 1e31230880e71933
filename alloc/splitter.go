package alloc

// split reduces a free, unlinked item of class i down to the smallest
// class that still satisfies n blocks (spec.md §4.5), returning the final
// item (still unlinked, still InUse == false — the caller sets InUse) and
// its class index.
//
// Invariant on entry: it is free and unlinked, S[i] >= n.
func split(t *classTable, i int, it item, n uintptr) (item, int) {
	cur := it
	for i > 4 && t.cells[i-1].size >= n {
		pLR := cur.LRBit()
		pInh := cur.InhBit()

		szl := t.cells[i-4].size
		szr := t.cells[i-1].size

		left := cur
		right := item(uintptr(cur) + szl*blockSize)

		left.SetSize(szl)
		left.SetLRBit(false)
		left.SetInUse(false)
		left.SetInhBit(pLR)

		right.SetSize(szr)
		right.SetLRBit(true)
		right.SetInUse(false)
		right.SetInhBit(pInh)

		// Left-preferred tie-break (spec.md §4.5): when the left buddy
		// alone already satisfies n, descend into it and bank the right
		// buddy, keeping larger right buddies available for future
		// larger requests.
		if szl >= n {
			t.cells[i-1].insert(right)
			cur = left
			i = i - 4
		} else {
			t.cells[i-4].insert(left)
			cur = right
			i = i - 1
		}
	}
	return cur, i
}
