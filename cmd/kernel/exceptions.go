package main

import "mazarin/internal/idt"

// installExceptionHandlers points every one of the 32 CPU-reserved IDT
// slots at this build's exception trampoline, so every exception reaches
// idt.Dispatch regardless of whether the CPU pushed an error code.
func installExceptionHandlers(t *idt.Table) {
	for vector := 0; vector < 32; vector++ {
		t.Install(uint8(vector), exceptionTrampolineAddr(uint8(vector)), codeSelector)
	}
}
