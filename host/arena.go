package host

import (
	"fmt"
	"sync"
	"unsafe"
)

// ArenaProvider is a test double: it hands out slices of one fixed,
// pre-allocated Go byte slice instead of making real mmap calls. It lets
// allocator tests run deterministically and without syscalls, the same way
// the teacher's arena tests hand a single make([]byte, n) "SAB" directly to
// the allocator under test.
type ArenaProvider struct {
	mu     sync.Mutex
	buf    []byte
	cursor uintptr
}

// NewArenaProvider creates a provider backed by a freshly allocated buffer
// of the given size. Every Acquire call bump-allocates out of this buffer;
// Release is a no-op, since a bump allocator can't reclaim individual
// regions, and it does not check the region/size pair it is given.
func NewArenaProvider(size uintptr) *ArenaProvider {
	return &ArenaProvider{buf: make([]byte, size)}
}

func (p *ArenaProvider) Acquire(size uintptr) (unsafe.Pointer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cursor+size > uintptr(len(p.buf)) {
		return nil, fmt.Errorf("host: arena exhausted: requested %d, %d remaining", size, uintptr(len(p.buf))-p.cursor)
	}
	ptr := unsafe.Pointer(&p.buf[p.cursor])
	p.cursor += size
	return ptr, nil
}

func (p *ArenaProvider) Release(region unsafe.Pointer, size uintptr) {
	// Bump allocator: individual regions are never reclaimed. The whole
	// arena is freed at once when the ArenaProvider itself is dropped.
}
