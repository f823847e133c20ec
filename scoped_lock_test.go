package locks

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestLock_Empty(t *testing.T) {
	require.NoError(t, Lock())
	sl, err := NewScopedLock()
	require.NoError(t, err)
	sl.Close()
}

func TestLock_NilMutex(t *testing.T) {
	var a Mutex
	err := Lock(&a, nil)
	require.ErrorIs(t, err, ErrMutexNotSet)
	require.False(t, a.Locked(), "nothing may be held after a failed Lock")

	_, err = NewScopedLock(nil)
	require.ErrorIs(t, err, ErrMutexNotSet)
}

func TestLock_AllHeld(t *testing.T) {
	var a, b, c Mutex
	require.NoError(t, Lock(&a, &b, &c))
	require.True(t, a.Locked() && b.Locked() && c.Locked())
	a.Unlock()
	b.Unlock()
	c.Unlock()
}

func TestLock_BacksOffOnContention(t *testing.T) {
	var a, b Mutex
	b.Lock()

	done := make(chan struct{})
	go func() {
		if err := Lock(&a, &b); err != nil {
			t.Error(err)
		}
		close(done)
	}()

	// The probe on b fails, a is given back and the next pass blocks on b.
	eventually(t, func() bool { return b.WaitCount() == 1 })
	require.False(t, a.Locked(), "Lock waited while holding a")
	require.True(t, a.TryLock())
	a.Unlock()

	b.Unlock()
	receive(t, done, "Lock")
	require.True(t, a.Locked() && b.Locked())
	a.Unlock()
	b.Unlock()
}

func TestLock_NoDeadlock(t *testing.T) {
	var a, b, c Mutex
	sets := [][]Locker{
		{&a, &b},
		{&b, &a},
		{&b, &c},
		{&c, &a, &b},
	}
	const loops = 300

	var g errgroup.Group
	for _, set := range sets {
		g.Go(func() error {
			for range loops {
				if err := Lock(set...); err != nil {
					return err
				}
				for _, m := range set {
					if !m.(*Mutex).Locked() {
						t.Error("mutex not held after Lock")
					}
					m.Unlock()
				}
			}
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("deadlock")
	}
}

func TestScopedLock(t *testing.T) {
	var mutex1, mutex2, mutex3 Mutex
	value := 0

	run := func(mutexes ...Locker) func() error {
		return func() error {
			sl, err := NewScopedLock(mutexes...)
			if err != nil {
				return err
			}
			defer sl.Close()
			value++
			time.Sleep(2 * time.Millisecond)
			return nil
		}
	}

	var g errgroup.Group
	for range 3 {
		g.Go(run(&mutex1, &mutex2))
	}
	g.Go(run(&mutex2, &mutex3))
	g.Go(run(&mutex1, &mutex2, &mutex3))
	g.Go(run(&mutex3, &mutex1))
	require.NoError(t, g.Wait())

	require.Equal(t, 6, value)
	require.False(t, mutex1.Locked() || mutex2.Locked() || mutex3.Locked())
}

func TestScopedLock_CloseOnce(t *testing.T) {
	var a Mutex
	var b sync.Mutex
	sl, err := NewScopedLock(&a, &b)
	require.NoError(t, err)
	require.True(t, a.Locked())
	require.False(t, b.TryLock())

	sl.Close()
	sl.Close()
	require.False(t, a.Locked())
	require.True(t, b.TryLock())
	b.Unlock()
}

func TestScopedLock_CopiesArguments(t *testing.T) {
	var a, b, c Mutex
	set := []Locker{&a, &b}
	sl, err := NewScopedLock(set...)
	require.NoError(t, err)

	set[1] = &c
	sl.Close()
	require.False(t, b.Locked())
	require.False(t, c.Locked())
}
