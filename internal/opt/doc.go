// Package opt holds build-tag selected implementation details.
//
// The parking primitive [Sema] switches implementation on the race build
// tag: the runtime semaphore is used directly in normal builds, while race
// builds use a sync.Cond based version so the detector observes the
// happens-before edge between a Release and the Acquire it wakes.
package opt
