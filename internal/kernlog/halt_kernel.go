//go:build kernel

package kernlog

import "mazarin/internal/cpu"

// haltForever disables interrupts and spins on hlt: the fatal-panic halt
// loop.
func haltForever() {
	cpu.DisableInterrupts()
	for {
		cpu.Halt()
	}
}
