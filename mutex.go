package locks

// Mutex is an exclusive lock with a strict FIFO wait queue.
//
// Unlike sync.Mutex, which allows "barging" (newcomers can steal the lock),
// Mutex never lets a late caller overtake a parked one: Unlock hands
// ownership directly to the earliest waiter, leaving no window in which a
// third goroutine could grab the lock.
//
// A locked Mutex is not associated with a particular goroutine. It is
// allowed for one goroutine to lock a Mutex and then arrange for another
// goroutine to unlock it.
//
// It is zero-value usable (starts unlocked).
type Mutex struct {
	_     noCopy
	mu    stateLock
	held  bool
	queue waitQueue
}

// Lock acquires the mutex, blocking until it is handed over if it is held.
func (m *Mutex) Lock() {
	m.mu.Lock()
	if !m.held {
		m.held = true
		m.mu.Unlock()
		return
	}
	w := &waiter{}
	m.queue.push(w)
	m.mu.Unlock()
	w.sema.Acquire()
}

// TryLock acquires the mutex if it is free and reports whether it did.
func (m *Mutex) TryLock() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.held {
		return false
	}
	m.held = true
	return true
}

// Unlock releases the mutex, passing it to the earliest waiter if any.
// It is a run-time error if m is not locked on entry to Unlock.
func (m *Mutex) Unlock() {
	m.mu.Lock()
	if !m.held {
		m.mu.Unlock()
		panic("locks: unlock of unlocked Mutex")
	}
	w := m.queue.pop()
	if w == nil {
		m.held = false
	}
	m.mu.Unlock()
	wake(w)
}

// Locked reports whether the mutex is currently held.
func (m *Mutex) Locked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held
}

// WaitCount returns the number of goroutines parked in Lock.
func (m *Mutex) WaitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.len()
}
