package alloc

import (
	"unsafe"

	"github.com/naens/fiballoc/host"
)

// chunkRecord remembers one region obtained from the host so Close can
// return it. See DESIGN.md for why this is a plain slice rather than the
// in-memory singly-linked list the original C used: Provider.Release needs
// the original acquisition size, which a bare link word cannot recover
// once an item inside the chunk has been split.
type chunkRecord struct {
	region unsafe.Pointer
	size   uintptr
}

type chunkRegistry struct {
	chunks []chunkRecord
}

func (r *chunkRegistry) register(region unsafe.Pointer, size uintptr) {
	r.chunks = append(r.chunks, chunkRecord{region: region, size: size})
}

func (r *chunkRegistry) count() int { return len(r.chunks) }

// releaseAll returns every registered chunk to the host and clears the
// registry. Called once, from Close.
func (r *chunkRegistry) releaseAll(p host.Provider) {
	for _, c := range r.chunks {
		p.Release(c.region, c.size)
	}
	r.chunks = nil
}
