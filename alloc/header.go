package alloc

import "unsafe"

// blockSize is the fixed allocation quantum: every item size is a whole
// number of 8-byte blocks.
const blockSize = 8

// headerSize is the size of an item's header word, reserved at the start
// of every item.
const headerSize = blockSize

// item is a raw handle to an allocation unit: the address of its header
// word. It is deliberately not a typed Go pointer — the bytes it refers to
// migrate between "free-list link storage" and "user payload" depending on
// the in_use bit, which no static Go type can express safely. Safety is a
// precondition on the caller (spec.md §9), not something the type system
// proves.
//
// The zero value represents "no item" (a nil handle), mirroring a NULL
// pointer in the original C.
type item uintptr

// header bit layout (LSB to MSB), matching spec.md §3.2:
//
//	bit 0: inhBit  — restoration bit, used when merging buddies back up
//	bit 1: lrBit   — 0 = left buddy of its parent, 1 = right
//	bit 2: inUse   — 1 = user owns the payload, 0 = on a free list
//	bit 3..: size  — block count (not the class index)
const (
	bitInh   = uintptr(1) << 0
	bitLR    = uintptr(1) << 1
	bitInUse = uintptr(1) << 2
	sizeShift = 3
)

func loadWord(addr uintptr) uintptr {
	return *(*uintptr)(unsafe.Pointer(addr))
}

func storeWord(addr uintptr, v uintptr) {
	*(*uintptr)(unsafe.Pointer(addr)) = v
}

func (it item) valid() bool { return it != 0 }

func (it item) header() uintptr { return loadWord(uintptr(it)) }

func (it item) setHeader(h uintptr) { storeWord(uintptr(it), h) }

// Size returns the item's block count, as stored directly in the header —
// never derived from a class index (spec.md §4.1).
func (it item) Size() uintptr { return it.header() >> sizeShift }

func (it item) SetSize(blocks uintptr) {
	flags := it.header() & (bitInh | bitLR | bitInUse)
	it.setHeader(flags | blocks<<sizeShift)
}

func (it item) InUse() bool { return it.header()&bitInUse != 0 }

func (it item) SetInUse(v bool) {
	h := it.header() &^ bitInUse
	if v {
		h |= bitInUse
	}
	it.setHeader(h)
}

// LRBit reports whether this item is the right buddy of its parent
// (true = right, false = left).
func (it item) LRBit() bool { return it.header()&bitLR != 0 }

func (it item) SetLRBit(v bool) {
	h := it.header() &^ bitLR
	if v {
		h |= bitLR
	}
	it.setHeader(h)
}

func (it item) InhBit() bool { return it.header()&bitInh != 0 }

func (it item) SetInhBit(v bool) {
	h := it.header() &^ bitInh
	if v {
		h |= bitInh
	}
	it.setHeader(h)
}

// Free-list links occupy the two machine words immediately after the
// header; they are only meaningful while the item is not in use.

func (it item) Prev() item { return item(loadWord(uintptr(it) + blockSize)) }

func (it item) SetPrev(p item) { storeWord(uintptr(it)+blockSize, uintptr(p)) }

func (it item) Next() item { return item(loadWord(uintptr(it) + 2*blockSize)) }

func (it item) SetNext(n item) { storeWord(uintptr(it)+2*blockSize, uintptr(n)) }

// Area returns the payload pointer handed to callers of Alloc.
func (it item) Area() unsafe.Pointer { return unsafe.Pointer(uintptr(it) + headerSize) }

// itemFromArea recovers the item owning a payload pointer previously
// returned by Alloc.
func itemFromArea(area unsafe.Pointer) item { return item(uintptr(area) - headerSize) }

// blocksFor returns the number of blocks needed to hold x payload bytes
// plus the header, rounded up: ceil((x + headerSize) / blockSize).
func blocksFor(x uintptr) uintptr {
	return (x + headerSize + blockSize - 1) / blockSize
}
