package locks

import "slices"

// Lock acquires every mutex as a set without risking deadlock against
// other callers locking overlapping sets in a different order.
//
// Algorithm:
// It blocks on one mutex, then probes the rest in ring order with TryLock.
// When a probe fails, everything taken in this pass is released in reverse
// order and the next pass starts by blocking on the contended mutex. A
// caller therefore never waits while holding anything, and some caller
// always makes progress.
//
// On success all mutexes are held and the caller must unlock each of them.
// A nil entry fails with ErrMutexNotSet before anything is acquired.
// Passing the same mutex twice never succeeds.
func Lock(mutexes ...Locker) error {
	n := len(mutexes)
	if n == 0 {
		return nil
	}

	held := make([]*UniqueLock, n)
	for i, m := range mutexes {
		if m == nil {
			return opError("Lock", ErrMutexNotSet)
		}
		held[i] = NewUniqueLock(m, DeferLock)
	}

	start := 0
	for {
		if err := held[start].Lock(); err != nil {
			return err
		}
		contended := -1
		for offset := 1; offset < n; offset++ {
			idx := (start + offset) % n
			ok, err := held[idx].TryLock()
			if err == nil && ok {
				continue
			}
			if uerr := unwind(held, start, offset); uerr != nil {
				return uerr
			}
			if err != nil {
				return err
			}
			contended = idx
			break
		}
		if contended < 0 {
			break
		}
		start = contended
	}

	// Ownership moves to the caller; the mutexes stay locked.
	for _, lk := range held {
		if _, err := lk.Release(); err != nil {
			return err
		}
	}
	return nil
}

// unwind unlocks, in reverse order, the count wrappers acquired in the
// pass that started at start.
func unwind(held []*UniqueLock, start, count int) error {
	n := len(held)
	for i := count - 1; i >= 0; i-- {
		if err := held[(start+i)%n].Unlock(); err != nil {
			return err
		}
	}
	return nil
}

// ScopedLock holds several mutexes, acquired with Lock, for the lifetime
// of a scope.
//
//	sl, err := locks.NewScopedLock(&a, &b)
//	if err != nil {
//		return err
//	}
//	defer sl.Close()
type ScopedLock struct {
	mutexes []Locker
}

// NewScopedLock blocks until every mutex is held. With no mutexes it
// succeeds immediately.
func NewScopedLock(mutexes ...Locker) (*ScopedLock, error) {
	if err := Lock(mutexes...); err != nil {
		return nil, err
	}
	return &ScopedLock{mutexes: slices.Clone(mutexes)}, nil
}

// Close unlocks every mutex. Only the first call has an effect.
func (s *ScopedLock) Close() {
	mutexes := s.mutexes
	s.mutexes = nil
	for _, m := range mutexes {
		m.Unlock()
	}
}
