// Package idt builds and installs the 256-entry Interrupt Descriptor Table.
// The first 32 slots are the CPU's reserved exception vectors; the ones in
// vectorsWithErrorCode have a different calling-convention shape than the
// rest because the CPU pushes an error code for some exceptions and not
// others. Slots 32 and
// up are free for device interrupts (wired up by internal/pic/internal/e1000).
package idt

const (
	NumEntries = 256

	gateTypeInterrupt = 0b1110
	privilegeLevel0   = 0
)

// HandlerShape distinguishes the two calling-convention shapes a CPU
// exception handler can have, so a single table can mix both without the
// dispatcher guessing from the vector number alone.
type HandlerShape int

const (
	// NoErrorCode handlers see only the CPU-pushed return frame.
	NoErrorCode HandlerShape = iota
	// WithErrorCode handlers see an extra error-code word below the return
	// frame (double-fault, GPF, page-fault, and a handful of others).
	WithErrorCode
)

// vectorsWithErrorCode lists the Intel-reserved exception vectors that push
// an error code, per the Intel SDM.
var vectorsWithErrorCode = map[uint8]bool{
	8:  true, // double fault
	10: true, // invalid TSS
	11: true, // segment not present
	12: true, // stack-segment fault
	13: true, // general protection fault
	14: true, // page fault
	17: true, // alignment check
	21: true, // control protection exception
	29: true, // VMM communication exception
	30: true, // security exception
}

// ShapeOf reports which handler calling convention vector n uses.
func ShapeOf(vector uint8) HandlerShape {
	if vectorsWithErrorCode[vector] {
		return WithErrorCode
	}
	return NoErrorCode
}

// Entry is one 8-byte IDT gate descriptor: a 16:16 split handler offset, the
// kernel code segment selector, gate type/DPL/present in one byte, and
// reserved padding.
type Entry struct {
	OffsetLow  uint16
	Selector   uint16
	Reserved   uint8
	TypeAttr   uint8
	OffsetHigh uint16
}

func typeAttrByte(present bool) uint8 {
	var b uint8
	if present {
		b |= 1 << 7
	}
	b |= (privilegeLevel0 & 0x3) << 5
	b |= gateTypeInterrupt & 0xF
	return b
}

// MakeEntry builds a present interrupt-gate descriptor pointing at
// handlerAddr, running in codeSelector at ring 0.
func MakeEntry(handlerAddr uint32, codeSelector uint16) Entry {
	return Entry{
		OffsetLow:  uint16(handlerAddr),
		Selector:   codeSelector,
		Reserved:   0,
		TypeAttr:   typeAttrByte(true),
		OffsetHigh: uint16(handlerAddr >> 16),
	}
}

// Table is the fixed-size IDT. Unused slots keep their zero value, which
// has the present bit clear, so the CPU raises #GP/#NP rather than jumping
// through a stale handler address.
type Table [NumEntries]Entry

// Install sets the handler for vector n.
func (t *Table) Install(vector uint8, handlerAddr uint32, codeSelector uint16) {
	t[vector] = MakeEntry(handlerAddr, codeSelector)
}

// Descriptor is the {size, offset} blob LIDT consumes.
type Descriptor struct {
	Size   uint16
	Offset uint32
}

// DescriptorFor computes the LIDT descriptor for a table stored at tableAddr.
func DescriptorFor(tableAddr uintptr, t *Table) Descriptor {
	const entrySize = 8
	return Descriptor{
		Size:   uint16(len(t)*entrySize - 1),
		Offset: uint32(tableAddr),
	}
}
