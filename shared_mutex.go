package locks

// SharedMutex is a reader-writer lock with FIFO queueing and a fairness
// policy fixed at construction.
//
// Properties:
//   - Any number of shared holders, or exactly one exclusive holder.
//   - Writer-priority by arrival order (default): once any request is
//     parked, new shared requests park behind it instead of joining the
//     active readers, so a writer is never starved by a stream of readers.
//     On release only the contiguous run of shared requests at the head of
//     the queue is admitted.
//   - Shared-first (NewSharedMutex(true)): new shared requests join active
//     readers even past a parked writer, and a release admits every parked
//     shared request at once. Writers may starve under continuous reader
//     arrival.
//
// Ownership is handed to woken goroutines before they run; a woken
// goroutine never re-contends.
//
// It is zero-value usable (unlocked, writer-priority).
type SharedMutex struct {
	_           noCopy
	mu          stateLock
	acquired    int
	exclusive   bool // meaningful only when acquired > 0
	sharedFirst bool
	queue       waitQueue
}

// NewSharedMutex returns an unlocked SharedMutex. With sharedFirst set,
// shared requests are preferred over queued exclusive ones.
func NewSharedMutex(sharedFirst bool) *SharedMutex {
	return &SharedMutex{sharedFirst: sharedFirst}
}

// SharedFirst reports the fairness policy chosen at construction.
func (m *SharedMutex) SharedFirst() bool {
	return m.sharedFirst
}

func (m *SharedMutex) canAcquire() bool {
	return m.acquired == 0
}

func (m *SharedMutex) canAcquireShared() bool {
	if m.acquired > 0 && m.exclusive {
		return false
	}
	return m.sharedFirst || m.queue.len() == 0
}

// Lock acquires the mutex exclusively, blocking until it is handed over.
func (m *SharedMutex) Lock() {
	m.mu.Lock()
	if m.canAcquire() {
		m.acquired, m.exclusive = 1, true
		m.mu.Unlock()
		return
	}
	w := &waiter{}
	m.queue.push(w)
	m.mu.Unlock()
	w.sema.Acquire()
}

// TryLock acquires the mutex exclusively if it is free.
func (m *SharedMutex) TryLock() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.canAcquire() {
		return false
	}
	m.acquired, m.exclusive = 1, true
	return true
}

// Unlock releases the exclusive hold and dispatches the queue.
// It is a run-time error if m is not exclusively locked on entry.
func (m *SharedMutex) Unlock() {
	m.mu.Lock()
	if m.acquired == 0 || !m.exclusive {
		m.mu.Unlock()
		panic("locks: unlock of unlocked SharedMutex")
	}
	m.acquired = 0
	w := m.dispatch()
	m.mu.Unlock()
	wake(w)
}

// LockShared acquires the mutex in shared mode, blocking while the
// fairness policy forbids it.
func (m *SharedMutex) LockShared() {
	m.mu.Lock()
	if m.canAcquireShared() {
		m.acquired++
		m.exclusive = false
		m.mu.Unlock()
		return
	}
	w := &waiter{shared: true}
	m.queue.push(w)
	m.mu.Unlock()
	w.sema.Acquire()
}

// TryLockShared acquires the mutex in shared mode if the fairness policy
// allows it right now.
func (m *SharedMutex) TryLockShared() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.canAcquireShared() {
		return false
	}
	m.acquired++
	m.exclusive = false
	return true
}

// UnlockShared releases one shared hold. The queue is dispatched only when
// the last shared holder leaves.
// It is a run-time error if m is not locked in shared mode on entry.
func (m *SharedMutex) UnlockShared() {
	m.mu.Lock()
	if m.acquired == 0 || m.exclusive {
		m.mu.Unlock()
		panic("locks: unlock of unlocked shared SharedMutex")
	}
	m.acquired--
	var w *waiter
	if m.canAcquire() {
		w = m.dispatch()
	}
	m.mu.Unlock()
	wake(w)
}

// WaitCount returns the number of goroutines parked in Lock or LockShared.
func (m *SharedMutex) WaitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.len()
}

// dispatch grants the mutex to the waiters selected by the fairness policy
// and returns them for waking. The mutex must be free.
func (m *SharedMutex) dispatch() *waiter {
	head := m.queue.head
	if head == nil {
		return nil
	}
	if !head.shared {
		m.acquired, m.exclusive = 1, true
		return m.queue.pop()
	}
	w, n := m.queue.extract(func(w *waiter) bool { return w.shared }, !m.sharedFirst)
	m.acquired, m.exclusive = n, false
	return w
}
