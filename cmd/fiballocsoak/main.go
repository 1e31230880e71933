// Command fiballocsoak runs a randomized allocate/free workload against the
// fiballoc allocator and reports the final size-class occupancy. It exists
// as a manual, longer-running companion to the package's soak test.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"unsafe"

	"github.com/naens/fiballoc/alloc"
	"github.com/naens/fiballoc/host"
	"github.com/naens/fiballoc/utils"
)

func main() {
	logger := utils.DefaultLogger("fiballocsoak")

	p := host.NewMmapProvider()
	a, err := alloc.New(p, alloc.Config{Logger: logger})
	if err != nil {
		fmt.Println("init failed:", err)
		os.Exit(1)
	}
	defer a.Close()

	const slots = 800
	const rounds = 200000
	live := make([]unsafe.Pointer, slots)
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < rounds; round++ {
		i := rng.Intn(slots)
		if live[i] != nil {
			a.Free(live[i])
			live[i] = nil
			continue
		}
		ptr, err := a.Alloc(uintptr(1 + rng.Intn(50000)))
		if err != nil {
			logger.Warn("allocation failed", utils.Err(err))
			continue
		}
		live[i] = ptr
	}

	for _, ptr := range live {
		if ptr != nil {
			a.Free(ptr)
		}
	}

	if err := a.Verify(); err != nil {
		fmt.Println("invariant violation:", err)
		os.Exit(1)
	}

	stats := a.Stats()
	fmt.Printf("soak complete: %d chunks, %d classes\n", stats.Chunks, stats.ClassCount)
	for _, c := range stats.Classes {
		if c.FreeItems > 0 {
			fmt.Printf("  class %3d  blocks=%-6d free=%d\n", c.Class, c.Blocks, c.FreeItems)
		}
	}
}
