//go:build kernel

package gdt

import "unsafe"

// load executes LGDT on the given descriptor and reloads CS (via a far
// jump to the code selector) and DS/ES/SS/FS/GS (to the data selector).
//
//go:linkname load mazarin_load_gdt
//go:nosplit
func load(descriptorAddr uintptr)

// Load installs table as the live GDT.
//
//go:nosplit
func Load(tableAddr uintptr, table [numEntries]Entry) {
	desc := DescriptorFor(tableAddr, table)
	load(uintptr(unsafe.Pointer(&desc)))
}
