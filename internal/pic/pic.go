// Package pic drives the legacy cascade of two Intel 8259 programmable
// interrupt controllers: master at ports 0x20/0x21, slave at 0xA0/0xA1.
package pic

import "mazarin/internal/cpu"

const (
	masterCommand = 0x20
	masterData    = 0x21
	slaveCommand  = 0xA0
	slaveData     = 0xA1

	icw1InitAndICW4 = 0x11
	icw4Mode8086    = 0x01

	masterSlaveLine = 0x04 // tell master: slave lives on IRQ2
	slaveCascadeID  = 0x02 // tell slave: my cascade identity is 2

	eoi = 0x20
)

// Offsets is the pair of interrupt-vector bases the master and slave PICs
// are remapped to. These must land past the CPU's 32 reserved exception
// vectors.
type Offsets struct {
	Master uint8
	Slave  uint8
}

// Masks is the pair of interrupt-mask registers (1 bit per IRQ line, 1 =
// masked) applied after remapping. bootconfig's default is 0xFE (master,
// IRQ0 unmasked) / 0xFF (slave, fully masked).
type Masks struct {
	Master uint8
	Slave  uint8
}

// Init runs the ICW1-ICW4 initialization sequence: remap both PICs to
// offsets, wire the cascade identity, select 8086 mode, then apply masks.
func Init(offsets Offsets, masks Masks) {
	cpu.OutB(masterCommand, icw1InitAndICW4)
	cpu.IOWait()
	cpu.OutB(slaveCommand, icw1InitAndICW4)
	cpu.IOWait()

	cpu.OutB(masterData, offsets.Master)
	cpu.IOWait()
	cpu.OutB(slaveData, offsets.Slave)
	cpu.IOWait()

	cpu.OutB(masterData, masterSlaveLine)
	cpu.IOWait()
	cpu.OutB(slaveData, slaveCascadeID)
	cpu.IOWait()

	cpu.OutB(masterData, icw4Mode8086)
	cpu.IOWait()
	cpu.OutB(slaveData, icw4Mode8086)
	cpu.IOWait()

	cpu.OutB(masterData, masks.Master)
	cpu.OutB(slaveData, masks.Slave)
}

// EndOfInterrupt acknowledges interrupt vector n. It must be issued to the
// slave first (if the interrupt came from it) and always to the master.
func EndOfInterrupt(n uint8, offsets Offsets) {
	if n >= offsets.Slave {
		cpu.OutB(slaveCommand, eoi)
	}
	if n >= offsets.Master {
		cpu.OutB(masterCommand, eoi)
	}
}
