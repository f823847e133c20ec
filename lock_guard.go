package locks

// LockGuard holds a Locker for exactly the lifetime of a scope.
//
//	g := locks.NewLockGuard(&mu)
//	defer g.Close()
type LockGuard struct {
	mu Locker
}

// NewLockGuard blocks until m is acquired. m must not be nil.
func NewLockGuard(m Locker) *LockGuard {
	m.Lock()
	return &LockGuard{mu: m}
}

// Close releases the mutex. Only the first call has an effect.
func (g *LockGuard) Close() {
	if m := g.mu; m != nil {
		g.mu = nil
		m.Unlock()
	}
}

// SharedLockGuard holds a SharedLocker in shared mode for exactly the
// lifetime of a scope.
type SharedLockGuard struct {
	mu SharedLocker
}

// NewSharedLockGuard blocks until m is acquired in shared mode.
// m must not be nil.
func NewSharedLockGuard(m SharedLocker) *SharedLockGuard {
	m.LockShared()
	return &SharedLockGuard{mu: m}
}

// Close releases the shared hold. Only the first call has an effect.
func (g *SharedLockGuard) Close() {
	if m := g.mu; m != nil {
		g.mu = nil
		m.UnlockShared()
	}
}
