//go:build !fiballoc_debug

package alloc

import "unsafe"

// Non-debug builds: no tracking overhead, per-call or otherwise.
func (a *Allocator) debugTrack(p unsafe.Pointer)   {}
func (a *Allocator) debugUntrack(p unsafe.Pointer) {}
func (a *Allocator) debugForget()                  {}
