package locks

import (
	"sync/atomic"
	"time"
	_ "unsafe" // for linkname
)

// stateLock is the fair ticket spin-lock guarding the bookkeeping of every
// primitive in this package.
//
// Critical sections under it only push/pop a wait queue or adjust a
// counter, and never park, so spinning in arrival order is cheaper than
// a full mutex and keeps the outer FIFO guarantees intact:
//   - Lock(): takes a ticket number and spins until `serving` reaches it.
//   - Unlock(): increments `serving`, admitting the next ticket holder.
type stateLock struct {
	next    atomic.Uint32
	serving atomic.Uint32
}

func (l *stateLock) Lock() {
	my := l.next.Add(1) - 1
	var spins int
	for l.serving.Load() != my {
		delay(&spins)
	}
}

func (l *stateLock) Unlock() {
	l.serving.Add(1)
}

// noCopy may be added to structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

func delay(spins *int) {
	if runtime_canSpin(*spins) {
		*spins++
		runtime_doSpin()
		return
	}
	*spins = 0
	// The state lock is only contended across a handful of instructions,
	// a short sleep lets a preempted holder get rescheduled.
	time.Sleep(50 * time.Microsecond)
}

// nolint:all
//
//go:linkname runtime_canSpin sync.runtime_canSpin
//goland:noinspection ALL
func runtime_canSpin(i int) bool

// nolint:all
//
//go:linkname runtime_doSpin sync.runtime_doSpin
//goland:noinspection ALL
func runtime_doSpin()
