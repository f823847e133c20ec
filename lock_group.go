package locks

import (
	"github.com/llxisdsh/pb"
)

// MutexGroup provides an exclusive Mutex per key.
//
// Features:
//   - FIFO per key, with the hand-off semantics of Mutex.
//   - Infinite Keys & Auto-Cleanup: an entry exists only while some
//     goroutine holds or waits for its key.
//
// Usage:
//
//	var group locks.MutexGroup[string]
//
//	group.Lock("account-1")
//	update(account1)
//	group.Unlock("account-1")
//
//	// Several keys as a set.
//	sl, _ := locks.NewScopedLock(group.Locker("a"), group.Locker("b"))
//	defer sl.Close()
type MutexGroup[K comparable] struct {
	_ noCopy
	g lockGroup[K, Mutex]
}

func (g *MutexGroup[K]) Lock(k K) {
	g.g.acquire(k).mu.Lock()
}

func (g *MutexGroup[K]) TryLock(k K) bool {
	if g.g.acquire(k).mu.TryLock() {
		return true
	}
	g.g.release(k)
	return false
}

// Unlock releases the key. It is a run-time error if k is not locked.
func (g *MutexGroup[K]) Unlock(k K) {
	e := g.g.lookup(k)
	if e == nil {
		panic("locks: unlock of unlocked MutexGroup key")
	}
	e.mu.Unlock()
	g.g.release(k)
}

// Locker returns a Locker view bound to k.
func (g *MutexGroup[K]) Locker(k K) Locker {
	return groupLocker[K]{g: g, k: k}
}

type groupLocker[K comparable] struct {
	g *MutexGroup[K]
	k K
}

func (l groupLocker[K]) Lock()         { l.g.Lock(l.k) }
func (l groupLocker[K]) TryLock() bool { return l.g.TryLock(l.k) }
func (l groupLocker[K]) Unlock()       { l.g.Unlock(l.k) }

// SharedMutexGroup provides a writer-priority SharedMutex per key.
// It matches the interface of MutexGroup but supports shared holds.
type SharedMutexGroup[K comparable] struct {
	_ noCopy
	g lockGroup[K, SharedMutex]
}

func (g *SharedMutexGroup[K]) Lock(k K) {
	g.g.acquire(k).mu.Lock()
}

func (g *SharedMutexGroup[K]) TryLock(k K) bool {
	if g.g.acquire(k).mu.TryLock() {
		return true
	}
	g.g.release(k)
	return false
}

func (g *SharedMutexGroup[K]) Unlock(k K) {
	e := g.g.lookup(k)
	if e == nil {
		panic("locks: unlock of unlocked SharedMutexGroup key")
	}
	e.mu.Unlock()
	g.g.release(k)
}

func (g *SharedMutexGroup[K]) LockShared(k K) {
	g.g.acquire(k).mu.LockShared()
}

func (g *SharedMutexGroup[K]) TryLockShared(k K) bool {
	if g.g.acquire(k).mu.TryLockShared() {
		return true
	}
	g.g.release(k)
	return false
}

func (g *SharedMutexGroup[K]) UnlockShared(k K) {
	e := g.g.lookup(k)
	if e == nil {
		panic("locks: unlock of unlocked SharedMutexGroup key")
	}
	e.mu.UnlockShared()
	g.g.release(k)
}

// Locker returns a SharedLocker view bound to k.
func (g *SharedMutexGroup[K]) Locker(k K) SharedLocker {
	return sharedGroupLocker[K]{g: g, k: k}
}

type sharedGroupLocker[K comparable] struct {
	g *SharedMutexGroup[K]
	k K
}

func (l sharedGroupLocker[K]) Lock()               { l.g.Lock(l.k) }
func (l sharedGroupLocker[K]) TryLock() bool       { return l.g.TryLock(l.k) }
func (l sharedGroupLocker[K]) Unlock()             { l.g.Unlock(l.k) }
func (l sharedGroupLocker[K]) LockShared()         { l.g.LockShared(l.k) }
func (l sharedGroupLocker[K]) TryLockShared() bool { return l.g.TryLockShared(l.k) }
func (l sharedGroupLocker[K]) UnlockShared()       { l.g.UnlockShared(l.k) }

// lockGroup keeps one ref-counted mutex per key. ref counts holders plus
// waiters and is only touched inside ProcessEntry.
type lockGroup[K comparable, M any] struct {
	m pb.MapOf[K, *groupEntry[M]]
}

type groupEntry[M any] struct {
	mu  M
	ref int32
}

func (g *lockGroup[K, M]) acquire(k K) *groupEntry[M] {
	e, _ := g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *groupEntry[M]]) (*pb.EntryOf[K, *groupEntry[M]], *groupEntry[M], bool) {
			if l != nil {
				l.Value.ref++
				return l, l.Value, true
			}
			e := &groupEntry[M]{ref: 1}
			return &pb.EntryOf[K, *groupEntry[M]]{Value: e}, e, false
		},
	)
	return e
}

func (g *lockGroup[K, M]) lookup(k K) *groupEntry[M] {
	e, _ := g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *groupEntry[M]]) (*pb.EntryOf[K, *groupEntry[M]], *groupEntry[M], bool) {
			if l == nil {
				return nil, nil, false
			}
			return l, l.Value, true
		},
	)
	return e
}

func (g *lockGroup[K, M]) release(k K) {
	_, _ = g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *groupEntry[M]]) (*pb.EntryOf[K, *groupEntry[M]], *groupEntry[M], bool) {
			if l == nil {
				return nil, nil, false
			}
			l.Value.ref--
			if l.Value.ref <= 0 {
				return nil, nil, true
			}
			return l, l.Value, true
		},
	)
}
