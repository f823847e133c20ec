//go:build !race

package opt

import (
	_ "unsafe" // for linkname
)

const Race_ = false

// Sema is a zero-allocation binary hand-off point for one parked goroutine.
// In !race mode, it is a direct wrapper around runtime.semacquire/semrelease.
//
// A Release that happens before the matching Acquire is not lost: the
// Acquire returns immediately.
type Sema uint32

// Acquire parks the calling goroutine until Release is called.
func (s *Sema) Acquire() {
	runtime_semacquire((*uint32)(s))
}

// Release wakes the goroutine parked in Acquire.
func (s *Sema) Release() {
	runtime_semrelease((*uint32)(s), false, 0)
}

//go:linkname runtime_semacquire sync.runtime_Semacquire
func runtime_semacquire(s *uint32)

//go:linkname runtime_semrelease sync.runtime_Semrelease
func runtime_semrelease(s *uint32, handoff bool, skipframes int)
