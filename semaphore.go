package locks

// Semaphore is a counting semaphore with FIFO dispatch.
//
// Permits are handed directly to parked goroutines on Release, in the order
// they called Acquire; a goroutine arriving while others are parked can
// never take a permit ahead of them.
//
// However, unlike Mutex, it does not have an owner.
//
// It is zero-value usable (starts with 0 permits).
type Semaphore struct {
	_       noCopy
	mu      stateLock
	permits int64
	queue   waitQueue
}

// NewSemaphore creates a new Semaphore with a given number of initial permits.
func NewSemaphore(permits int64) *Semaphore {
	return &Semaphore{permits: permits}
}

// Acquire takes one permit, blocking until one is released to it.
func (s *Semaphore) Acquire() {
	s.mu.Lock()
	if s.permits > 0 {
		s.permits--
		s.mu.Unlock()
		return
	}
	w := &waiter{}
	s.queue.push(w)
	s.mu.Unlock()
	w.sema.Acquire()
}

// TryAcquire takes one permit without blocking.
// Returns true on success.
func (s *Semaphore) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.permits <= 0 {
		return false
	}
	s.permits--
	return true
}

// Release returns n permits and wakes up to n parked goroutines from the
// head of the queue. Each woken goroutine consumes one permit, so after
// waking k goroutines the count is its previous value plus n minus k.
//
// A negative n is rejected with ErrInvalidPermits and changes nothing.
func (s *Semaphore) Release(n int64) error {
	if n < 0 {
		return opError("Semaphore.Release", ErrInvalidPermits)
	}
	s.mu.Lock()
	s.permits += n
	k := min(s.permits, int64(s.queue.len()))
	var w *waiter
	if k > 0 {
		w = s.queue.popN(int(k))
		s.permits -= k
	}
	s.mu.Unlock()
	wake(w)
	return nil
}

// Available returns the number of permits that can be taken without
// blocking.
func (s *Semaphore) Available() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permits
}

// WaitCount returns the number of goroutines parked in Acquire.
func (s *Semaphore) WaitCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.len()
}
