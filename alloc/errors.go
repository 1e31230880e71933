package alloc

import "fmt"

// ErrHostExhausted is returned when the host.Provider cannot satisfy a
// chunk acquisition (spec.md §7 "Host acquisition failure").
var ErrHostExhausted = fmt.Errorf("fiballoc: host memory exhausted")

// ErrTableCorrupt signals an internal invariant violation in the
// size-class table: a freed item's header reports a block count that
// matches no class in the table. Per spec.md §7 this is a process-fatal
// bug, never reachable on correct use of Alloc/Free, not a recoverable
// condition — callers that attach a Logger will see it as a Fatal entry
// before the process exits.
var ErrTableCorrupt = fmt.Errorf("fiballoc: size-class table corrupt")

// ErrDoubleFree is wrapped into the panic that the fiballoc_debug build's
// tracked Free raises when p is not currently live. Ordinary (non-debug)
// builds never use it —
// per spec.md §7 a double-free is plain undefined behavior there.
var ErrDoubleFree = fmt.Errorf("fiballoc: double free or invalid pointer")

func wrapHostErr(size uintptr, err error) error {
	return fmt.Errorf("%w: requested %d blocks: %w", ErrHostExhausted, size, err)
}
