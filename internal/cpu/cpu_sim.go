//go:build !kernel

package cpu

import "sync"

// sim is a software stand-in for the CPU state the real kernel build talks
// to through assembly: a 64 KiB I/O port space, a byte-addressable MMIO
// window, and an interrupt-enable flag. It exists so every package built on
// top of cpu can be exercised with `go test` on a host machine; it is never
// linked into the freestanding kernel image (build tag "kernel" excludes
// this file there).
var sim = struct {
	mu     sync.Mutex
	ports  [1 << 16]uint32
	mmio   map[uintptr]uint32
	ifFlag bool
}{mmio: make(map[uintptr]uint32), ifFlag: true}

func OutB(port uint16, value uint8) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.ports[port] = uint32(value)
}

func InB(port uint16) uint8 {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return uint8(sim.ports[port])
}

func OutW(port uint16, value uint16) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.ports[port] = uint32(value)
}

func InW(port uint16) uint16 {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return uint16(sim.ports[port])
}

func OutL(port uint16, value uint32) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.ports[port] = value
}

func InL(port uint16) uint32 {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.ports[port]
}

func MMIOWrite32(addr uintptr, value uint32) {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.mmio[addr] = value
}

func MMIORead32(addr uintptr) uint32 {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.mmio[addr]
}

func Halt() {}

func InterruptsEnabled() bool {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	return sim.ifFlag
}

func DisableInterrupts() {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.ifFlag = false
}

func EnableInterrupts() {
	sim.mu.Lock()
	defer sim.mu.Unlock()
	sim.ifFlag = true
}
