package multiboot

import "unsafe"

// infoHeader is the fixed 8-byte prefix of the Multiboot2 information
// structure: total size of the whole structure, and a reserved word.
type infoHeader struct {
	TotalSize uint32
	Reserved  uint32
}

// Info wraps the Multiboot2 information structure at a known physical
// address, as handed to _start by the bootloader.
type Info struct {
	addr unsafe.Pointer
}

// NewInfo wraps the structure at addr. addr is the pointer the boot loader
// passed to the kernel entry point.
func NewInfo(addr unsafe.Pointer) Info {
	return Info{addr: addr}
}

// Tags returns an iterator over every tag following the fixed header.
func (i Info) Tags() TagIter {
	return NewTagIter(unsafe.Add(i.addr, unsafe.Sizeof(infoHeader{})))
}

// MemoryMapEntries locates the memory-map tag (if present) and decodes its
// entries.
func (i Info) MemoryMapEntries() ([]MemoryMapEntry, bool) {
	tags := i.Tags()
	for {
		hdr, addr, ok := tags.Next()
		if !ok {
			return nil, false
		}
		if hdr.Type == TagMemoryMap {
			return MemoryMapEntries(addr), true
		}
	}
}
