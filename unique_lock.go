package locks

// UniqueLock tracks exclusive ownership of a Locker.
//
// A UniqueLock is in one of three states:
//   - detached: no mutex (the zero value, or after Release).
//   - bound: a mutex is set but not owned.
//   - owned: the mutex is set and this UniqueLock holds it.
//
// The initial state is chosen by the LockStrategy given to NewUniqueLock.
// Ownership moves between wrappers with Release and AdoptLock, without
// touching the underlying mutex:
//
//	lk := locks.NewUniqueLock(&mu, locks.InstantLock)
//	m, _ := lk.Release()
//	next := locks.NewUniqueLock(m, locks.AdoptLock)
//	defer next.Close()
//
// A UniqueLock belongs to one critical section and must not be used by
// several goroutines at once.
type UniqueLock struct {
	mu   Locker
	owns bool
}

// NewUniqueLock binds m and acquires it according to strategy.
// InstantLock may block. A nil m yields a detached UniqueLock.
func NewUniqueLock(m Locker, strategy LockStrategy) *UniqueLock {
	l := &UniqueLock{mu: m}
	if m == nil {
		return l
	}
	switch strategy {
	case InstantLock:
		m.Lock()
		l.owns = true
	case TryToLock:
		l.owns = m.TryLock()
	case AdoptLock:
		l.owns = true
	case DeferLock:
	}
	return l
}

// Lock blocks until the bound mutex is acquired.
func (l *UniqueLock) Lock() error {
	if err := l.checkAcquire("UniqueLock.Lock"); err != nil {
		return err
	}
	l.mu.Lock()
	l.owns = true
	return nil
}

// TryLock attempts the bound mutex without blocking and reports whether
// it was acquired.
func (l *UniqueLock) TryLock() (bool, error) {
	if err := l.checkAcquire("UniqueLock.TryLock"); err != nil {
		return false, err
	}
	l.owns = l.mu.TryLock()
	return l.owns, nil
}

// Unlock releases the bound mutex.
func (l *UniqueLock) Unlock() error {
	if l.mu == nil {
		return opError("UniqueLock.Unlock", ErrMutexNotSet)
	}
	if !l.owns {
		return opError("UniqueLock.Unlock", ErrLockAlreadyFreed)
	}
	l.mu.Unlock()
	l.owns = false
	return nil
}

// Release detaches the mutex and returns it without unlocking it. If the
// mutex was owned the caller becomes responsible for unlocking it,
// typically by adopting it into a new wrapper.
func (l *UniqueLock) Release() (Locker, error) {
	if l.mu == nil {
		return nil, opError("UniqueLock.Release", ErrMutexNotSet)
	}
	m := l.mu
	l.mu, l.owns = nil, false
	return m, nil
}

// OwnsLock reports whether the bound mutex is held by this UniqueLock.
func (l *UniqueLock) OwnsLock() bool {
	return l.owns
}

// Mutex returns the bound mutex, or nil once detached.
func (l *UniqueLock) Mutex() Locker {
	return l.mu
}

// Close unlocks the mutex if it is bound and owned, and is a no-op
// otherwise. It is meant to be deferred right after construction.
func (l *UniqueLock) Close() {
	if l.mu != nil && l.owns {
		l.owns = false
		l.mu.Unlock()
	}
}

func (l *UniqueLock) checkAcquire(op string) error {
	if l.mu == nil {
		return opError(op, ErrMutexNotSet)
	}
	if l.owns {
		return opError(op, ErrLockAlreadyAcquired)
	}
	return nil
}
