package alloc

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Verify walks every chunk and every free list and checks the structural
// invariants spec.md §8 relies on for its soak scenario:
//
//	P1 — every chunk partitions exactly into a sequence of items (no gaps,
//	     no overlaps) terminated by a size-0 sentinel.
//	P2 — a free item appears on exactly the free list matching its size.
//	P3 — the number of items on all free lists matches the number of free
//	     items chunk-walking finds.
//
// It is a debugging aid, not part of the hot path: O(total live memory).
func (a *Allocator) Verify() error {
	// One bitset per chunk, sized to that chunk's own block count and
	// indexed by block offset within the chunk — not by absolute address.
	// Indexing by address (what an earlier revision of this file did)
	// makes bits-and-blooms/bitset grow its backing array out to the
	// highest address ever Set, which for host-mmap'd or heap-resident
	// regions is many gigabytes to terabytes per call. Keeping the index
	// local to a chunk bounds it to that chunk's real block count, the
	// same way the teacher's buddy.go bitmap is indexed by
	// offset/MIN_BUDDY_SIZE within its arena rather than by raw address.
	onList := make([]*bitset.BitSet, len(a.chunks.chunks))
	for i, rec := range a.chunks.chunks {
		onList[i] = bitset.New(uint(rec.size / blockSize))
	}

	listCount := 0
	for k, c := range a.table.cells {
		for it := c.head; it.valid(); it = it.Next() {
			if it.Size() != c.size {
				return fmt.Errorf("fiballoc: item at class %d has size %d, want %d", k, it.Size(), c.size)
			}
			ci, offset, ok := a.locateChunk(it)
			if !ok {
				return fmt.Errorf("fiballoc: free item at %#x does not belong to any known chunk", uintptr(it))
			}
			onList[ci].Set(offset)
			listCount++
		}
	}

	walked := 0
	for ci, rec := range a.chunks.chunks {
		pos := item(uintptr(rec.region) + headerSize)
		end := uintptr(rec.region) + rec.size
		for {
			if uintptr(pos) >= end {
				return fmt.Errorf("fiballoc: chunk at %#x overran without a sentinel", rec.region)
			}
			size := pos.Size()
			if size == 0 {
				if !pos.InUse() || !pos.LRBit() {
					return fmt.Errorf("fiballoc: malformed sentinel at %#x", uintptr(pos))
				}
				break
			}
			if _, ok := classIndexForSize(a.table, size); !ok {
				return fmt.Errorf("fiballoc: item at %#x has size %d matching no class", uintptr(pos), size)
			}
			if !pos.InUse() {
				offset := uint((uintptr(pos) - uintptr(rec.region)) / blockSize)
				if !onList[ci].Test(offset) {
					return fmt.Errorf("fiballoc: free item at %#x missing from its class free list", uintptr(pos))
				}
				walked++
			}
			pos = item(uintptr(pos) + size*blockSize)
		}
	}

	if walked != listCount {
		return fmt.Errorf("fiballoc: free lists hold %d items, chunk walk found %d", listCount, walked)
	}
	return nil
}

// locateChunk finds which registered chunk owns it, and its block offset
// within that chunk. O(chunk count); Verify is a diagnostic, not hot path.
func (a *Allocator) locateChunk(it item) (idx int, offset uint, ok bool) {
	addr := uintptr(it)
	for i, rec := range a.chunks.chunks {
		start := uintptr(rec.region)
		end := start + rec.size
		if addr >= start && addr < end {
			return i, uint((addr - start) / blockSize), true
		}
	}
	return 0, 0, false
}
