//go:build kernel

package idt

import "unsafe"

//go:linkname load mazarin_load_idt
//go:nosplit
func load(descriptorAddr uintptr)

// Load installs t as the live IDT.
//
//go:nosplit
func Load(tableAddr uintptr, t *Table) {
	desc := DescriptorFor(tableAddr, t)
	load(uintptr(unsafe.Pointer(&desc)))
}
