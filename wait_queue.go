package locks

import "github.com/llxisdsh/locks/internal/opt"

// waiter is one parked goroutine. It is released exactly once, after the
// releasing side has already recorded it as the new holder.
type waiter struct {
	next   *waiter
	shared bool
	sema   opt.Sema
}

// waitQueue is an intrusive FIFO of parked goroutines. It is always
// accessed under the owning primitive's stateLock.
type waitQueue struct {
	head *waiter
	tail *waiter
	n    int
}

func (q *waitQueue) len() int {
	return q.n
}

func (q *waitQueue) push(w *waiter) {
	w.next = nil
	if q.tail == nil {
		q.head = w
	} else {
		q.tail.next = w
	}
	q.tail = w
	q.n++
}

func (q *waitQueue) pop() *waiter {
	w := q.head
	if w == nil {
		return nil
	}
	q.head = w.next
	if q.head == nil {
		q.tail = nil
	}
	q.n--
	w.next = nil
	return w
}

// popN unlinks up to n waiters from the head, returned as a chain in
// arrival order.
func (q *waitQueue) popN(n int) *waiter {
	var head, tail *waiter
	for ; n > 0; n-- {
		w := q.pop()
		if w == nil {
			break
		}
		if tail == nil {
			head = w
		} else {
			tail.next = w
		}
		tail = w
	}
	return head
}

// take unlinks every waiter.
func (q *waitQueue) take() *waiter {
	w := q.head
	q.head, q.tail, q.n = nil, nil, 0
	return w
}

// extract unlinks the waiters for which match returns true, keeping the
// relative order of both the extracted chain and the remaining queue.
// With prefix set it stops at the first waiter that does not match.
func (q *waitQueue) extract(match func(*waiter) bool, prefix bool) (*waiter, int) {
	var head, tail, prev *waiter
	var n int
	for w := q.head; w != nil; {
		next := w.next
		if !match(w) {
			if prefix {
				break
			}
			prev = w
			w = next
			continue
		}
		if prev == nil {
			q.head = next
		} else {
			prev.next = next
		}
		if q.tail == w {
			q.tail = prev
		}
		q.n--
		w.next = nil
		if tail == nil {
			head = w
		} else {
			tail.next = w
		}
		tail = w
		n++
		w = next
	}
	return head, n
}

// remove unlinks w if it is still queued.
func (q *waitQueue) remove(w *waiter) bool {
	_, n := q.extract(func(x *waiter) bool { return x == w }, false)
	return n > 0
}

// wake releases every waiter of a chain returned by pop, popN, take
// or extract. It must be called without holding the stateLock.
func wake(w *waiter) {
	for w != nil {
		next := w.next
		w.sema.Release()
		w = next
	}
}
