package locks

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package matches exactly
// one of them with errors.Is.
var (
	// ErrProtocol reports an operation invoked in a state that does not
	// allow it.
	ErrProtocol = errors.New("protocol error")

	// ErrConfig reports an argument rejected before any state changed.
	ErrConfig = errors.New("configuration error")
)

var (
	ErrMutexNotSet         = fmt.Errorf("%w: mutex is not set", ErrProtocol)
	ErrLockAlreadyAcquired = fmt.Errorf("%w: lock already acquired", ErrProtocol)
	ErrLockAlreadyFreed    = fmt.Errorf("%w: lock already freed", ErrProtocol)
	ErrLockNotOwned        = fmt.Errorf("%w: lock should own the lock by calling wait", ErrProtocol)

	ErrInvalidPermits = fmt.Errorf("%w: update must be a non-negative integer", ErrConfig)
)

// OpError records the operation that failed together with the cause.
type OpError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("locks: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *OpError) Unwrap() error {
	return e.Err
}

func opError(op string, err error) *OpError {
	return &OpError{Op: op, Err: err}
}
