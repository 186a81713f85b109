//go:build kernel

package main

import _ "unsafe"

// exceptionTrampolineAddrs is the table of 32 assembly trampoline entry
// points (mazarin_isr0..mazarin_isr31 in boot.s), one per CPU-reserved
// vector. Each trampoline pushes the vector number (and, for
// WithErrorCode vectors, the CPU has already pushed the error code) and
// jumps to a common stub that builds an idt.ExceptionInfo and calls
// idt.Dispatch.
//
//go:linkname exceptionTrampolineAddrs mazarin_isr_table
var exceptionTrampolineAddrs [32]uint32

func exceptionTrampolineAddr(vector uint8) uint32 {
	return exceptionTrampolineAddrs[vector]
}
