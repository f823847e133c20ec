//go:build race

package opt

import (
	"sync"
)

const Race_ = true

// Sema is a binary hand-off point for one parked goroutine.
// Under the race detector it is built on sync.Cond so that every Release
// happens-before the Acquire it unblocks.
type Sema struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count uint32
}

// Acquire parks the calling goroutine until Release is called.
func (s *Sema) Acquire() {
	s.mu.Lock()
	if s.cond == nil {
		s.cond = sync.NewCond(&s.mu)
	}
	for s.count == 0 {
		s.cond.Wait()
	}
	s.count--
	s.mu.Unlock()
}

// Release wakes the goroutine parked in Acquire.
func (s *Sema) Release() {
	s.mu.Lock()
	s.count++
	if s.cond != nil {
		s.cond.Signal()
	}
	s.mu.Unlock()
}
