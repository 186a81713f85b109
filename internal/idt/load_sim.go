//go:build !kernel

package idt

// Load is a no-op outside the freestanding kernel build.
func Load(tableAddr uintptr, t *Table) {}
