package e1000

import (
	"mazarin/internal/idt"
	"mazarin/internal/pic"
)

// IMS bits this driver enables: receiver timer interrupt and
// transmit-descriptor-written-back.
const (
	imsReceiverTimer           = 1 << 7
	imsTransmitDescWrittenBack = 1 << 0
)

// EnableInterrupts programs IMS and installs the dispatch handler at IDT
// slot 32+interruptLine, matching the "32 + pci.interrupt_line" rule.
func (d *Driver) EnableInterrupts(table *idt.Table, codeSelector uint16, handlerAddr uint32) {
	d.regs.write(regIMS, imsReceiverTimer|imsTransmitDescWrittenBack)
	table.Install(32+d.interruptLine, handlerAddr, codeSelector)
}

// HandleInterrupt is the body of the generic e1000 interrupt handler: it
// drains any ready receive descriptors and issues EOI last, matching the
// original's "print, then EOI" handler shape generalized to do real work
// before acknowledging.
func (d *Driver) HandleInterrupt(offsets pic.Offsets) [][]byte {
	packets := d.Receive()
	pic.EndOfInterrupt(32+d.interruptLine, offsets)
	return packets
}
