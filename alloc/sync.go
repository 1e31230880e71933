package alloc

import (
	"sync"
	"unsafe"

	"github.com/naens/fiballoc/host"
)

// SyncAllocator wraps an Allocator with a single mutex, per spec.md §5's
// own note that its described algorithms are inherently single-threaded
// and that concurrent access is an orthogonal, additive concern. It trades
// concurrency for simplicity: one allocator-wide lock, no per-class
// striping, matching how the teacher's HybridAllocator guards its own
// single shared state.
type SyncAllocator struct {
	mu  sync.Mutex
	inner *Allocator
}

// NewSync builds a SyncAllocator around a freshly-initialized Allocator.
func NewSync(p host.Provider, cfg Config) (*SyncAllocator, error) {
	a, err := New(p, cfg)
	if err != nil {
		return nil, err
	}
	return &SyncAllocator{inner: a}, nil
}

func (s *SyncAllocator) Alloc(x uintptr) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Alloc(x)
}

func (s *SyncAllocator) Free(p unsafe.Pointer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Free(p)
}

func (s *SyncAllocator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Close()
}

func (s *SyncAllocator) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Stats()
}
