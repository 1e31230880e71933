package host

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MmapProvider is the production Provider. It acquires anonymous, private,
// page-aligned mappings from the kernel and unmaps them on Release.
//
// mmap happens to hand back zeroed pages, but fiballoc MUST NOT depend on
// that: spec'd behavior is "content undefined."
type MmapProvider struct {
	mu     sync.Mutex
	region map[uintptr][]byte // tracks the backing slice so it isn't GC'd early
}

// NewMmapProvider returns a Provider backed by mmap(2)/munmap(2).
func NewMmapProvider() *MmapProvider {
	return &MmapProvider{region: make(map[uintptr][]byte)}
}

func (p *MmapProvider) Acquire(size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, fmt.Errorf("host: zero-size acquisition")
	}
	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("host: mmap %d bytes: %w", size, err)
	}
	ptr := unsafe.Pointer(&b[0])

	p.mu.Lock()
	p.region[uintptr(ptr)] = b
	p.mu.Unlock()

	return ptr, nil
}

func (p *MmapProvider) Release(region unsafe.Pointer, size uintptr) {
	key := uintptr(region)

	p.mu.Lock()
	b, ok := p.region[key]
	delete(p.region, key)
	p.mu.Unlock()

	if !ok {
		// Region not tracked by this provider; nothing we can safely do.
		return
	}
	_ = unix.Munmap(b)
}
