// Package locks provides FIFO synchronization primitives with the
// coordination vocabulary of a native threading library: exclusive and
// reader-writer mutexes, condition variables, counting semaphores,
// ownership-tracking lock wrappers, scope guards and a deadlock-avoidance
// algorithm for acquiring several mutexes as a set.
//
// Every waiter parks in arrival order and is handed ownership directly by
// the goroutine that releases, so a woken goroutine never re-contends.
// Blocked acquisitions cannot be cancelled and have no timeout.
//
// Wrappers and guards are released at scope exit with defer:
//
//	var mu locks.SharedMutex
//
//	func read() {
//		g := locks.NewSharedLockGuard(&mu)
//		defer g.Close()
//		// ...
//	}
//
//	func transfer(a, b *locks.Mutex) error {
//		sl, err := locks.NewScopedLock(a, b)
//		if err != nil {
//			return err
//		}
//		defer sl.Close()
//		// ...
//		return nil
//	}
package locks
