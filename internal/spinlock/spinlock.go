// Package spinlock implements an interrupt-safe mutual exclusion primitive
// for shared kernel structures. Unlike a hosted sync.Mutex, acquiring this
// lock must also disable interrupts on the local CPU: an interrupt handler
// that reused the same lock while it is already held by the interrupted code
// would spin forever.
//
// cmd/kernel keeps its allocators, IDT, NIC driver and logger in plain
// package-level variables; none of them is wrapped in a Spinlock.
package spinlock

import (
	"sync/atomic"

	"mazarin/internal/cpu"
)

// Spinlock protects a value of type T behind a CAS-spin flag plus a
// disable-interrupts-before-acquire / restore-after-release discipline, so
// an interrupt handler on the same CPU can't deadlock against itself.
type Spinlock[T any] struct {
	held atomic.Bool
	data T
}

// Guard is returned by Lock and holds both the protected value and the
// interrupt-enable bit that was observed before the lock was taken.
type Guard[T any] struct {
	lock       *Spinlock[T]
	wasEnabled bool
}

// New constructs a Spinlock wrapping the given initial value.
func New[T any](initial T) *Spinlock[T] {
	return &Spinlock[T]{data: initial}
}

// Lock acquires the spinlock:
//  1. save the current interrupt-enable flag
//  2. disable interrupts
//  3. spin a compare-and-swap of the held flag until it succeeds
//
// Disabling interrupts before spinning prevents the symmetric deadlock: an
// interrupt fired mid-spin on this same CPU could try to take the same lock
// and never return control to the spinning code.
func (s *Spinlock[T]) Lock() *Guard[T] {
	wasEnabled := cpu.SaveAndDisableInterrupts()
	for !s.held.CompareAndSwap(false, true) {
		// spin; nothing else can run on this CPU with interrupts off, but
		// the loop still gives real hardware a chance to notice bus traffic
	}
	return &Guard[T]{lock: s, wasEnabled: wasEnabled}
}

// Get returns a pointer to the protected value for the duration the guard is
// held.
func (g *Guard[T]) Get() *T {
	return &g.lock.data
}

// Unlock releases the spinlock's CAS flag and only then restores the
// interrupt-enable flag that was in effect before Lock was called. The
// ordering is mandatory: re-enabling interrupts before releasing the flag
// would let an interrupt handler on this CPU observe the lock still held and
// deadlock against the code that is about to release it.
func (g *Guard[T]) Unlock() {
	g.lock.held.Store(false)
	cpu.RestoreInterrupts(g.wasEnabled)
}
