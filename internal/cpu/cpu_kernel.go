//go:build kernel

package cpu

import _ "unsafe" // for go:linkname

//go:linkname OutB mazarin_outb
//go:nosplit
func OutB(port uint16, value uint8)

//go:linkname InB mazarin_inb
//go:nosplit
func InB(port uint16) uint8

//go:linkname OutW mazarin_outw
//go:nosplit
func OutW(port uint16, value uint16)

//go:linkname InW mazarin_inw
//go:nosplit
func InW(port uint16) uint16

//go:linkname OutL mazarin_outl
//go:nosplit
func OutL(port uint16, value uint32)

//go:linkname InL mazarin_inl
//go:nosplit
func InL(port uint16) uint32

// MMIORead32 and MMIOWrite32 perform volatile 32-bit memory-mapped I/O
// accesses. Every device register touched by this kernel goes through these
// two functions so the compiler never reorders or elides the access.
//
//go:linkname MMIORead32 mazarin_mmio_read32
//go:nosplit
func MMIORead32(addr uintptr) uint32

//go:linkname MMIOWrite32 mazarin_mmio_write32
//go:nosplit
func MMIOWrite32(addr uintptr, value uint32)

// Halt executes hlt, suspending the CPU until the next interrupt.
//
//go:linkname Halt mazarin_hlt
//go:nosplit
func Halt()

//go:linkname InterruptsEnabled mazarin_interrupts_enabled
//go:nosplit
func InterruptsEnabled() bool

//go:linkname DisableInterrupts mazarin_cli
//go:nosplit
func DisableInterrupts()

//go:linkname EnableInterrupts mazarin_sti
//go:nosplit
func EnableInterrupts()
