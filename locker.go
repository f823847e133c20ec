package locks

// Locker is the exclusive-lock capability.
//
// *Mutex and *SharedMutex implement it, and so does *sync.Mutex.
type Locker interface {
	Lock()
	TryLock() bool
	Unlock()
}

// SharedLocker is a Locker that can also be held in shared mode.
type SharedLocker interface {
	Locker
	LockShared()
	TryLockShared() bool
	UnlockShared()
}

// Lockable is the basic-lockable capability consumed by ConditionVariable.
// *UniqueLock and *SharedLock implement it.
type Lockable interface {
	Lock() error
	Unlock() error
	OwnsLock() bool
}

// LockStrategy selects how a UniqueLock or SharedLock takes its mutex at
// construction.
type LockStrategy uint8

const (
	// InstantLock blocks until the mutex is acquired.
	InstantLock LockStrategy = iota
	// TryToLock attempts the mutex once without blocking.
	TryToLock
	// AdoptLock assumes the caller already holds the mutex.
	AdoptLock
	// DeferLock binds the mutex without acquiring it.
	DeferLock
)

func (s LockStrategy) String() string {
	switch s {
	case InstantLock:
		return "instant_lock"
	case TryToLock:
		return "try_to_lock"
	case AdoptLock:
		return "adopt_lock"
	case DeferLock:
		return "defer_lock"
	default:
		return "unknown"
	}
}

var (
	_ Locker       = (*Mutex)(nil)
	_ SharedLocker = (*SharedMutex)(nil)
	_ Lockable     = (*UniqueLock)(nil)
	_ Lockable     = (*SharedLock)(nil)
)
