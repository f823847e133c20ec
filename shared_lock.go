package locks

// SharedLock tracks shared ownership of a SharedLocker. It has the same
// states and strategies as UniqueLock, but every acquisition goes through
// the shared-mode methods of the mutex.
type SharedLock struct {
	mu   SharedLocker
	owns bool
}

// NewSharedLock binds m and acquires it in shared mode according to
// strategy. InstantLock may block. A nil m yields a detached SharedLock.
func NewSharedLock(m SharedLocker, strategy LockStrategy) *SharedLock {
	l := &SharedLock{mu: m}
	if m == nil {
		return l
	}
	switch strategy {
	case InstantLock:
		m.LockShared()
		l.owns = true
	case TryToLock:
		l.owns = m.TryLockShared()
	case AdoptLock:
		l.owns = true
	case DeferLock:
	}
	return l
}

// Lock blocks until the bound mutex is acquired in shared mode.
func (l *SharedLock) Lock() error {
	if err := l.checkAcquire("SharedLock.Lock"); err != nil {
		return err
	}
	l.mu.LockShared()
	l.owns = true
	return nil
}

// TryLock attempts a shared acquisition without blocking.
func (l *SharedLock) TryLock() (bool, error) {
	if err := l.checkAcquire("SharedLock.TryLock"); err != nil {
		return false, err
	}
	l.owns = l.mu.TryLockShared()
	return l.owns, nil
}

// Unlock releases the shared hold.
func (l *SharedLock) Unlock() error {
	if l.mu == nil {
		return opError("SharedLock.Unlock", ErrMutexNotSet)
	}
	if !l.owns {
		return opError("SharedLock.Unlock", ErrLockAlreadyFreed)
	}
	l.mu.UnlockShared()
	l.owns = false
	return nil
}

// Release detaches the mutex and returns it, leaving any shared hold in
// place for the caller.
func (l *SharedLock) Release() (SharedLocker, error) {
	if l.mu == nil {
		return nil, opError("SharedLock.Release", ErrMutexNotSet)
	}
	m := l.mu
	l.mu, l.owns = nil, false
	return m, nil
}

// OwnsLock reports whether a shared hold is owned by this SharedLock.
func (l *SharedLock) OwnsLock() bool {
	return l.owns
}

// Mutex returns the bound mutex, or nil once detached.
func (l *SharedLock) Mutex() SharedLocker {
	return l.mu
}

// Close releases the shared hold if owned.
func (l *SharedLock) Close() {
	if l.mu != nil && l.owns {
		l.owns = false
		l.mu.UnlockShared()
	}
}

func (l *SharedLock) checkAcquire(op string) error {
	if l.mu == nil {
		return opError(op, ErrMutexNotSet)
	}
	if l.owns {
		return opError(op, ErrLockAlreadyAcquired)
	}
	return nil
}
