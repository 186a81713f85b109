// Package multiboot walks the Multiboot2 boot information structure handed
// off by the boot loader and extracts the memory-map tag, the only tag this
// kernel core consumes.
package multiboot

import "unsafe"

// TagType identifies a tag's payload shape.
type TagType uint32

const (
	TagEnd       TagType = 0
	TagMemoryMap TagType = 6
)

// tagHeader is the 8-byte common prefix of every tag.
type tagHeader struct {
	Type TagType
	Size uint32
}

// align8 rounds n up to the next multiple of 8, the tag alignment the
// Multiboot2 spec requires between consecutive tags.
func align8(n uint32) uint32 {
	return (n + 7) &^ 7
}

// TagIter walks the tag list starting at first until it reaches the
// terminating {type: End, size: 8} tag.
type TagIter struct {
	current unsafe.Pointer
}

// NewTagIter constructs an iterator over the tag list beginning at addr.
func NewTagIter(addr unsafe.Pointer) TagIter {
	return TagIter{current: addr}
}

// Next returns the next tag's header and its raw address, or ok=false once
// the End tag is reached.
func (it *TagIter) Next() (header tagHeader, addr unsafe.Pointer, ok bool) {
	h := *(*tagHeader)(it.current)
	if h.Type == TagEnd && h.Size == 8 {
		return tagHeader{}, nil, false
	}

	addr = it.current
	it.current = unsafe.Add(it.current, uintptr(align8(h.Size)))
	return h, addr, true
}
