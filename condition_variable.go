package locks

// ConditionVariable lets goroutines wait until they are notified, releasing
// a held lock while they wait and taking it back before they return.
//
// Waiters are woken in the order they started waiting. Notifying does not
// require holding the associated lock; if a notification must not be missed,
// change the awaited state under the lock before notifying, and wait with
// WaitFor.
//
// It is zero-value usable.
type ConditionVariable struct {
	_     noCopy
	mu    stateLock
	queue waitQueue
}

// NotifyOne wakes the earliest waiter, if any.
func (c *ConditionVariable) NotifyOne() {
	c.mu.Lock()
	w := c.queue.pop()
	c.mu.Unlock()
	wake(w)
}

// NotifyAll wakes every current waiter in arrival order.
func (c *ConditionVariable) NotifyAll() {
	c.mu.Lock()
	w := c.queue.take()
	c.mu.Unlock()
	wake(w)
}

// Wait releases lk and parks until notified, then re-acquires lk
// before returning. Re-acquisition may block if another goroutine took the
// lock in between.
//
// lk must own its lock, otherwise ErrLockNotOwned is returned.
func (c *ConditionVariable) Wait(lk Lockable) error {
	if lk == nil || !lk.OwnsLock() {
		return opError("ConditionVariable.Wait", ErrLockNotOwned)
	}

	// Queue before unlocking: a notifier that acquires lk after this point
	// is guaranteed to find us.
	w := &waiter{}
	c.mu.Lock()
	c.queue.push(w)
	c.mu.Unlock()

	if err := lk.Unlock(); err != nil {
		c.mu.Lock()
		queued := c.queue.remove(w)
		c.mu.Unlock()
		if !queued {
			// Already notified, pass the wake-up on.
			c.NotifyOne()
		}
		return err
	}
	w.sema.Acquire()
	return lk.Lock()
}

// WaitFor waits until pred returns true. pred is evaluated with lk held,
// before the first wait and after every wake-up, so spurious or early
// notifications are absorbed. A nil pred behaves like Wait.
func (c *ConditionVariable) WaitFor(lk Lockable, pred func() bool) error {
	if pred == nil {
		return c.Wait(lk)
	}
	if lk == nil || !lk.OwnsLock() {
		return opError("ConditionVariable.WaitFor", ErrLockNotOwned)
	}
	for !pred() {
		if err := c.Wait(lk); err != nil {
			return err
		}
	}
	return nil
}

// WaitCount returns the number of goroutines parked in Wait.
func (c *ConditionVariable) WaitCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.len()
}
