//go:build !kernel

package main

// exceptionTrampolineAddr is a stand-in outside the freestanding build:
// there is no real IDT to jump through on a hosted OS, so the address is
// never dereferenced.
func exceptionTrampolineAddr(vector uint8) uint32 { return 0 }
