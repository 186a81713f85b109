// Package cpu provides the lowest-level x86 primitives the rest of the
// kernel is built on: I/O port access, volatile MMIO access, the
// interrupt-enable flag, and the halt instruction.
//
// Two implementations exist behind the "kernel" build tag: the default
// build (no tags, used by `go test` and by host-side tooling) is a software
// simulation good enough to exercise every caller's logic; building
// cmd/kernel with -tags kernel links the real go:linkname stubs onto
// hand-written assembly.
package cpu

// IOWait gives the 8259 (and other legacy devices) time to settle after a
// command/data port write, by writing to the unused legacy port 0x80.
//
//go:nosplit
func IOWait() {
	OutB(0x80, 0)
}

// SaveAndDisableInterrupts reads the current interrupt-enable flag and then
// clears it, returning the prior value so the caller can restore it later.
// This is the first half of the spinlock acquire discipline: disable
// interrupts before spinning so an interrupt handler on the same CPU can't
// deadlock against the lock holder.
//
//go:nosplit
func SaveAndDisableInterrupts() bool {
	wasEnabled := InterruptsEnabled()
	DisableInterrupts()
	return wasEnabled
}

// RestoreInterrupts re-enables interrupts iff wasEnabled is true. This is
// the second half of the spinlock release discipline: it must run only
// after the lock itself has been released.
//
//go:nosplit
func RestoreInterrupts(wasEnabled bool) {
	if wasEnabled {
		EnableInterrupts()
	}
}
