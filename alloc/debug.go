//go:build fiballoc_debug

package alloc

import (
	"fmt"
	"sync"
	"unsafe"
)

// liveTracker upgrades double-free and use-after-close from undefined
// behavior into a panic carrying ErrDoubleFree, at the cost of a map
// lookup per Alloc/Free. Built only under the fiballoc_debug tag
// (SPEC_FULL.md §7) — production builds never pay for it, matching the
// teacher's own build-tag-gated debug instrumentation convention.
type liveTracker struct {
	mu   sync.Mutex
	live map[uintptr]int
}

var debugTrackers sync.Map // map[*Allocator]*liveTracker

func trackerFor(a *Allocator) *liveTracker {
	v, ok := debugTrackers.Load(a)
	if ok {
		return v.(*liveTracker)
	}
	lt := &liveTracker{live: make(map[uintptr]int)}
	actual, _ := debugTrackers.LoadOrStore(a, lt)
	return actual.(*liveTracker)
}

func (a *Allocator) debugTrack(p unsafe.Pointer) {
	lt := trackerFor(a)
	lt.mu.Lock()
	defer lt.mu.Unlock()
	lt.live[uintptr(p)]++
}

func (a *Allocator) debugUntrack(p unsafe.Pointer) {
	lt := trackerFor(a)
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if lt.live[uintptr(p)] == 0 {
		panic(fmt.Errorf("%w: %#x", ErrDoubleFree, uintptr(p)))
	}
	lt.live[uintptr(p)]--
	if lt.live[uintptr(p)] == 0 {
		delete(lt.live, uintptr(p))
	}
}

func (a *Allocator) debugForget() {
	debugTrackers.Delete(a)
}
