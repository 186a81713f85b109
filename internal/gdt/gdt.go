// Package gdt builds and installs the three-entry Global Descriptor Table
// (null, code, data) this kernel runs under in 32-bit protected mode.
package gdt

import "mazarin/internal/bitfield"

// Selector indices into the table, also used as segment selectors (shifted
// left by 3, the entry size in bytes, by the assembly reload stub).
const (
	NullSegmentIndex = 0
	CodeSegmentIndex = 1
	DataSegmentIndex = 2

	numEntries = 3
)

// accessByte mirrors the x86 segment descriptor access byte. Field order
// matches original_source/src/gdt.rs's GDTEntryAccessByte bit-for-bit:
// accessed(1) | read_write(1) | direction(1) | executable(1) |
// descriptor_type(1) | privilege_level(2) | present(1).
type accessByte struct {
	Accessed       bool  `bitfield:",1"`
	ReadWrite      bool  `bitfield:",1"`
	Direction      bool  `bitfield:",1"`
	Executable     bool  `bitfield:",1"`
	DescriptorType bool  `bitfield:",1"`
	PrivilegeLevel uint8 `bitfield:",2"`
	Present        bool  `bitfield:",1"`
}

// entryFlags mirrors GDTEntryFlags: limit_high(4) | reserved(1) |
// long_mode(1) | size(1) | granularity(1).
type entryFlags struct {
	LimitHigh   uint8 `bitfield:",4"`
	Reserved    uint8 `bitfield:",1"`
	LongMode    bool  `bitfield:",1"`
	Size        bool  `bitfield:",1"`
	Granularity bool  `bitfield:",1"`
}

// Entry is one 8-byte GDT descriptor, laid out exactly as the CPU expects:
// limit_lower, base_lower, base_middle, access byte, flags|limit_high,
// base_high.
type Entry struct {
	LimitLower uint16
	BaseLower  uint16
	BaseMiddle uint8
	Access     uint8
	Flags      uint8
	BaseHigh   uint8
}

// Descriptor is the {size, offset} blob LGDT consumes.
type Descriptor struct {
	Size   uint16
	Offset uint32
}

func packAccessByte(a accessByte) uint8 {
	packed, err := bitfield.Pack(a, &bitfield.Config{NumBits: 8})
	if err != nil {
		panic(err)
	}
	return uint8(packed)
}

func packFlags(f entryFlags) uint8 {
	packed, err := bitfield.Pack(f, &bitfield.Config{NumBits: 8})
	if err != nil {
		panic(err)
	}
	return uint8(packed)
}

func createSegment(base, limit uint32, access accessByte, flags entryFlags) Entry {
	limitHigh := uint8(limit>>16) & 0xF
	flags.LimitHigh = limitHigh

	return Entry{
		LimitLower: uint16(limit),
		BaseLower:  uint16(base),
		BaseMiddle: uint8(base >> 16),
		Access:     packAccessByte(access),
		Flags:      packFlags(flags),
		BaseHigh:   uint8(base >> 24),
	}
}

func nullSegment() Entry {
	return Entry{}
}

func codeSegment() Entry {
	access := accessByte{
		Present:        true,
		DescriptorType: true,
		Executable:     true,
		Direction:      false,
		ReadWrite:      true, // readable
	}
	flags := entryFlags{Granularity: true, LongMode: false, Size: true}
	return createSegment(0, 0xFFFFF, access, flags)
}

func dataSegment() Entry {
	access := accessByte{
		Present:        true,
		DescriptorType: true,
		Executable:     false,
		Direction:      false,
		ReadWrite:      true, // writable
	}
	flags := entryFlags{Granularity: true, LongMode: false, Size: true}
	return createSegment(0, 0xFFFFF, access, flags)
}

// Build constructs the fixed three-entry table {null, code, data}.
func Build() [numEntries]Entry {
	return [numEntries]Entry{
		NullSegmentIndex: nullSegment(),
		CodeSegmentIndex: codeSegment(),
		DataSegmentIndex: dataSegment(),
	}
}

// DescriptorFor computes the {size, offset} descriptor LGDT needs for a
// table stored at tableAddr.
func DescriptorFor(tableAddr uintptr, table [numEntries]Entry) Descriptor {
	const entrySize = 8
	return Descriptor{
		Size:   uint16(len(table)*entrySize - 1),
		Offset: uint32(tableAddr),
	}
}
