package alloc

import (
	"unsafe"

	"github.com/naens/fiballoc/utils"
)

func uintLogField(key string, v uintptr) utils.Field { return utils.Uintptr(key, v) }

// locateSourceClass implements Variant α of spec.md §4.4 step 2: scan
// k = 0, 1, ... while S[k] < n, or the cell at k is empty and either k is
// not the last index or S[k] is below the minimum worthwhile chunk size —
// extending the table by one class each time the scan reaches its current
// end. Acquiring a fresh host chunk only ever happens at the class the
// scan settles on, so successive acquisitions grow monotonically.
func (a *Allocator) locateSourceClass(n uintptr) int {
	i := 0
	for {
		c := a.table.cells[i]
		lastIdx := a.table.len() - 1
		needMore := c.size < n ||
			(!c.head.valid() && (i < lastIdx || c.size < a.cfg.MinChunkBlocks))
		if !needMore {
			return i
		}
		if i == lastIdx {
			a.table.extendOnce()
		}
		i++
	}
}

// Alloc returns a payload pointer of at least x usable bytes (spec.md
// §4.4, C7). Content of the returned region is unspecified.
func (a *Allocator) Alloc(x uintptr) (unsafe.Pointer, error) {
	n := blocksFor(x)
	i := a.locateSourceClass(n)

	var it item
	if a.table.cells[i].head.valid() {
		it = a.table.cells[i].takeFirst()
	} else {
		acquired, err := a.allocNewChunk(a.table.cells[i].size)
		if err != nil {
			return nil, err
		}
		it = acquired
	}

	final, _ := split(a.table, i, it, n)
	final.SetInUse(true)

	if a.cfg.Logger != nil {
		a.cfg.Logger.Debug("alloc", uintLogField("bytes", x), uintLogField("blocks", final.Size()))
	}
	area := final.Area()
	a.debugTrack(area)
	return area, nil
}

// Free returns a payload pointer previously obtained from Alloc to the
// allocator (spec.md §4.7, C8). Double-free and freeing an unowned
// pointer are undefined, per spec.md §7.
func (a *Allocator) Free(p unsafe.Pointer) {
	a.debugUntrack(p)
	it := itemFromArea(p)
	size := it.Size()

	i, ok := classIndexForSize(a.table, size)
	if !ok {
		if a.cfg.Logger != nil {
			a.cfg.Logger.Fatal("free: item size matches no class in the table", uintLogField("size", size))
		}
		panic(ErrTableCorrupt)
	}

	it.SetInUse(false)
	a.table.cells[i].insert(it)
	coalesce(a.table, i)

	if a.cfg.Logger != nil {
		a.cfg.Logger.Debug("free", uintLogField("blocks", size))
	}
}

// classIndexForSize finds the class whose size exactly matches blocks,
// per spec.md §4.7 step 2 ("linear scan"). The size field is canonical.
func classIndexForSize(t *classTable, blocks uintptr) (int, bool) {
	for k, c := range t.cells {
		if c.size == blocks {
			return k, true
		}
	}
	return 0, false
}

// allocNewChunk acquires a fresh chunk from the host sized for n blocks
// (spec.md §4.8, C4). Layout of the acquired region of 8n+16 bytes:
//
//	[0 .. 8)      reserved (chunk bookkeeping lives in chunkRegistry, see
//	              DESIGN.md; this offset still exists so the item below
//	              starts at the spec'd +8 boundary)
//	[8 .. 8+8n)   the item body (header at offset 8, payload at offset 16)
//	[8+8n .. +8)  the sentinel
func (a *Allocator) allocNewChunk(n uintptr) (item, error) {
	totalBytes := headerSize + n*blockSize + headerSize
	region, err := a.host.Acquire(totalBytes)
	if err != nil {
		return 0, wrapHostErr(n, err)
	}
	a.chunks.register(region, totalBytes)

	it := item(uintptr(region) + headerSize)
	sentinel := item(uintptr(it) + n*blockSize)

	sentinel.SetSize(0)
	sentinel.SetLRBit(true)
	sentinel.SetInUse(true)

	it.SetSize(n)
	it.SetLRBit(false)
	it.SetInUse(false)
	it.SetInhBit(false)

	if a.cfg.Logger != nil {
		a.cfg.Logger.Debug("chunk acquired", uintLogField("blocks", n), uintLogField("bytes", totalBytes))
	}
	return it, nil
}
