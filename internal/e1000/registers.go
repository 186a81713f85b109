// Package e1000 drives an Intel 8254x-family ("e1000") Ethernet controller:
// MMIO register access, EEPROM-driven MAC address read, and the TX/RX
// descriptor ring lifecycle.
package e1000

import "mazarin/internal/cpu"

// MMIO register byte offsets, canonical per the Intel 8254x datasheet.
const (
	regCTRL  = 0x0000
	regSTATUS = 0x0008
	regEERD  = 0x0014
	regIMS   = 0x00D0
	regRCTL  = 0x0100
	regTCTL  = 0x0400
	regTIPG  = 0x0410
	regRDBAL = 0x2800
	regRDBAH = 0x2804
	regRDLEN = 0x2808
	regRDH   = 0x2810
	regRDT   = 0x2818
	regRDTR  = 0x2820
	regTDBAL = 0x3800
	regTDBAH = 0x3804
	regTDLEN = 0x3808
	regTDH   = 0x3810
	regTDT   = 0x3818
	regMTA   = 0x5200
	regRAL0  = 0x5400
	regRAH0  = 0x5404
)

// EERD bit layout.
const (
	eerdStartRead = 1 << 0
	eerdDone      = 1 << 4
	eerdAddrShift = 8
	eerdDataShift = 16
)

const eepromMACOffset = 0x00

// RAH0 bit layout: the high 16 bits of the receive address sit in the low
// half of the dword; bit 31 (address_valid) marks the entry as in use.
const rahAddressValid = 1 << 31

// mtaEntryCount is the number of dwords in the multicast table array, each
// covering 32 bits of the 4096-bit hash space.
const mtaEntryCount = 128

// regs is the MMIO-mapped register bank, addressed relative to a BAR0
// physical base. In the freestanding build this is real device memory; in
// the host simulation it is backed by internal/cpu's simulated MMIO map.
type regs struct {
	base uintptr
}

func (r regs) read(offset uintptr) uint32 {
	return cpu.MMIORead32(r.base + offset)
}

func (r regs) write(offset uintptr, value uint32) {
	cpu.MMIOWrite32(r.base+offset, value)
}

// readMAC performs the three half-word EEPROM reads needed to fill a 6-byte
// MAC address and concatenates them little-endian.
func (r regs) readMAC() [6]byte {
	var mac [6]byte
	for i := uint32(0); i < 3; i++ {
		r.write(regEERD, eerdStartRead|(eepromMACOffset+i)<<eerdAddrShift)
		for r.read(regEERD)&eerdDone == 0 {
			cpu.IOWait()
		}
		word := uint16(r.read(regEERD) >> eerdDataShift)
		mac[i*2] = byte(word)
		mac[i*2+1] = byte(word >> 8)
	}
	return mac
}
