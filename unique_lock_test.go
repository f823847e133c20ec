package locks

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestUniqueLock_Strategies(t *testing.T) {
	t.Run("instant_lock", func(t *testing.T) {
		var mu Mutex
		lk := NewUniqueLock(&mu, InstantLock)
		require.True(t, lk.OwnsLock())
		require.True(t, mu.Locked())
		lk.Close()
		require.False(t, mu.Locked())
	})

	t.Run("try_to_lock", func(t *testing.T) {
		var mu Mutex
		lk := NewUniqueLock(&mu, TryToLock)
		require.True(t, lk.OwnsLock())

		other := NewUniqueLock(&mu, TryToLock)
		require.False(t, other.OwnsLock())
		require.Same(t, &mu, other.Mutex())

		lk.Close()
		other.Close()
		require.False(t, mu.Locked())
	})

	t.Run("adopt_lock", func(t *testing.T) {
		var mu Mutex
		mu.Lock()
		lk := NewUniqueLock(&mu, AdoptLock)
		require.True(t, lk.OwnsLock())
		require.Zero(t, mu.WaitCount())
		lk.Close()
		require.False(t, mu.Locked())
	})

	t.Run("defer_lock", func(t *testing.T) {
		var mu Mutex
		lk := NewUniqueLock(&mu, DeferLock)
		require.False(t, lk.OwnsLock())
		require.False(t, mu.Locked())
		require.NoError(t, lk.Lock())
		require.True(t, mu.Locked())
		lk.Close()
	})
}

func TestUniqueLock_ProtocolErrors(t *testing.T) {
	var mu Mutex
	lk := NewUniqueLock(&mu, InstantLock)

	require.ErrorIs(t, lk.Lock(), ErrLockAlreadyAcquired)
	_, err := lk.TryLock()
	require.ErrorIs(t, err, ErrLockAlreadyAcquired)

	require.NoError(t, lk.Unlock())
	require.ErrorIs(t, lk.Unlock(), ErrLockAlreadyFreed)

	ok, err := lk.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, lk.Unlock())

	var opErr *OpError
	require.ErrorAs(t, lk.Unlock(), &opErr)
	require.Equal(t, "UniqueLock.Unlock", opErr.Op)
}

func TestUniqueLock_Release(t *testing.T) {
	var mu Mutex
	lk := NewUniqueLock(&mu, InstantLock)

	m, err := lk.Release()
	require.NoError(t, err)
	require.Same(t, &mu, m)
	require.False(t, lk.OwnsLock())
	require.Nil(t, lk.Mutex())
	// Release transfers ownership, it does not unlock.
	require.True(t, mu.Locked())

	require.ErrorIs(t, lk.Lock(), ErrMutexNotSet)
	_, err = lk.TryLock()
	require.ErrorIs(t, err, ErrMutexNotSet)
	require.ErrorIs(t, lk.Unlock(), ErrMutexNotSet)
	_, err = lk.Release()
	require.ErrorIs(t, err, ErrMutexNotSet)
	lk.Close()
	require.True(t, mu.Locked(), "Close of a detached lock unlocked the mutex")

	next := NewUniqueLock(m, AdoptLock)
	require.True(t, next.OwnsLock())
	next.Close()
	require.False(t, mu.Locked())
}

func TestUniqueLock_Detached(t *testing.T) {
	var lk UniqueLock
	require.ErrorIs(t, lk.Lock(), ErrMutexNotSet)
	require.False(t, lk.OwnsLock())
	lk.Close()

	nilLk := NewUniqueLock(nil, InstantLock)
	require.ErrorIs(t, nilLk.Unlock(), ErrMutexNotSet)
}

func TestUniqueLock_CloseOnce(t *testing.T) {
	var mu Mutex
	lk := NewUniqueLock(&mu, InstantLock)
	lk.Close()
	lk.Close()
	require.False(t, mu.Locked())

	// Still bound after Close, so it can be locked again.
	require.NoError(t, lk.Lock())
	lk.Close()
}

func TestUniqueLock_StdMutex(t *testing.T) {
	var mu sync.Mutex
	lk := NewUniqueLock(&mu, InstantLock)
	require.False(t, mu.TryLock())
	lk.Close()
	require.True(t, mu.TryLock())
	mu.Unlock()
}

func uniqueLockWorkers(t *testing.T, mu Locker) {
	const n = 5
	value := 0
	results := make([]int, n)

	var g errgroup.Group
	for i := range n {
		g.Go(func() error {
			lk := NewUniqueLock(mu, InstantLock)
			defer lk.Close()
			value++
			time.Sleep(2 * time.Millisecond)
			results[i] = value
			return nil
		})
	}
	require.NoError(t, g.Wait())

	slices.Sort(results)
	require.Equal(t, []int{1, 2, 3, 4, 5}, results)
}

func TestUniqueLock_Workers(t *testing.T) {
	t.Run("Mutex", func(t *testing.T) { uniqueLockWorkers(t, &Mutex{}) })
	t.Run("SharedMutex", func(t *testing.T) { uniqueLockWorkers(t, &SharedMutex{}) })
}

func TestLockStrategy_String(t *testing.T) {
	require.Equal(t, "instant_lock", InstantLock.String())
	require.Equal(t, "try_to_lock", TryToLock.String())
	require.Equal(t, "adopt_lock", AdoptLock.String())
	require.Equal(t, "defer_lock", DeferLock.String())
	require.Equal(t, "unknown", LockStrategy(42).String())
}

func TestOpError(t *testing.T) {
	err := error(opError("UniqueLock.Lock", ErrMutexNotSet))
	require.Equal(t, "locks: UniqueLock.Lock: protocol error: mutex is not set", err.Error())
	require.True(t, errors.Is(err, ErrProtocol))
	require.False(t, errors.Is(err, ErrConfig))
}
