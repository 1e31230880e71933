// Package alloc implements a general-purpose dynamic memory allocator
// whose size classes follow a generalized Fibonacci sequence
// (S[k] = S[k-1] + S[k-4]) rather than the powers of two of a classical
// buddy allocator. See SPEC_FULL.md for the full design.
package alloc

import (
	"github.com/naens/fiballoc/host"
	"github.com/naens/fiballoc/utils"
)

// defaultMinChunkBlocks is MIN_CHUNK_BLOCKS from spec.md §4.4: the
// smallest chunk worth acquiring from the host on its own, ceil(64 *
// wordSize / 8) = 64 blocks (512 bytes) on a 64-bit host.
const defaultMinChunkBlocks uintptr = 64

// Config configures an Allocator. The zero value is valid and fills in
// spec'd defaults.
type Config struct {
	// MinChunkBlocks is MIN_CHUNK_BLOCKS (spec.md §4.4). Zero selects the
	// spec default of 64 blocks.
	MinChunkBlocks uintptr

	// TableGrowthFactor is the size-class table's backing-array growth
	// factor (spec.md §4.3 Strategy A, "a new capacity is assigned").
	// Zero selects the spec'd default of 2 (doubling).
	TableGrowthFactor int

	// Logger, if set, receives Debug-level events for chunk acquisition,
	// allocation, and release. Left nil, the allocator never logs.
	Logger *utils.Logger
}

func (c Config) withDefaults() Config {
	if c.MinChunkBlocks == 0 {
		c.MinChunkBlocks = defaultMinChunkBlocks
	}
	if c.TableGrowthFactor == 0 {
		c.TableGrowthFactor = defaultTableGrowthFactor
	}
	return c
}

// ClassStats reports the live state of one size class.
type ClassStats struct {
	Class      int
	Blocks     uintptr
	FreeItems  int
}

// Stats is a snapshot of allocator state (spec.md §9 Design Notes do not
// mandate this, but original_source/mem.c's debug tracing and the
// teacher's BuddyStats/HybridStats shape both motivate exposing one — see
// SPEC_FULL.md §12).
type Stats struct {
	Chunks     int
	ClassCount int
	Classes    []ClassStats
}

// Allocator is the generalized-Fibonacci allocator core (C9 lifecycle,
// C7/C8 engine). It is not safe for concurrent use; wrap it in
// SyncAllocator for that (spec.md §5).
type Allocator struct {
	host   host.Provider
	table  *classTable
	chunks chunkRegistry
	cfg    Config
}

// New initializes an allocator drawing backing memory from p (spec.md §4.9
// "init"). p must not be nil.
func New(p host.Provider, cfg Config) (*Allocator, error) {
	if p == nil {
		return nil, utils.NewError("fiballoc: nil host.Provider")
	}
	cfg = cfg.withDefaults()

	a := &Allocator{
		host:  p,
		table: newClassTable(cfg.TableGrowthFactor),
		cfg:   cfg,
	}
	if cfg.Logger != nil {
		cfg.Logger.Debug("allocator initialized", utils.Int("min_chunk_blocks", int(cfg.MinChunkBlocks)))
	}
	return a, nil
}

// Close releases every chunk this allocator has acquired back to the host
// (spec.md §4.9 "finalize"). Behavior is undefined if outstanding
// allocations are live, or if Alloc/Free are called afterward.
func (a *Allocator) Close() error {
	if a.cfg.Logger != nil {
		a.cfg.Logger.Debug("allocator finalized", utils.Int("chunks", a.chunks.count()))
	}
	a.chunks.releaseAll(a.host)
	a.debugForget()
	return nil
}

// Stats returns a snapshot of the size-class table and chunk registry.
func (a *Allocator) Stats() Stats {
	classes := make([]ClassStats, a.table.len())
	for k, c := range a.table.cells {
		n := 0
		for it := c.head; it.valid(); it = it.Next() {
			n++
		}
		classes[k] = ClassStats{Class: k, Blocks: c.size, FreeItems: n}
	}
	return Stats{
		Chunks:     a.chunks.count(),
		ClassCount: a.table.len(),
		Classes:    classes,
	}
}
