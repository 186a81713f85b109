// Package bootconfig holds the kernel's named, overridable tunables in one
// place instead of scattering magic numbers through the subsystems that use
// them: one named const block per concern, the same as a top-of-file
// PAGE_SIZE/KERNEL_HEAP_SIZE/peripheral-base-address block.
package bootconfig

import "mazarin/internal/pic"

// PICMasks decides which IRQ lines start masked after remapping. The
// default enables only master IRQ0 (the programmable interval timer) and
// masks everything on the slave. Aliased to pic.Masks so callers can pass
// bootconfig's defaults straight into pic.Init without a conversion.
type PICMasks = pic.Masks

// DefaultPICMasks is the spec's stated default: 0xFE / 0xFF.
var DefaultPICMasks = PICMasks{Master: 0xFE, Slave: 0xFF}

// PICOffsets is where the master/slave PICs are remapped to in the IDT,
// past the 32 CPU-reserved exception vectors. Aliased to pic.Offsets for
// the same reason as PICMasks.
type PICOffsets = pic.Offsets

// DefaultPICOffsets remaps master to 32 and slave to 40, so interrupt
// vectors land as 32 + pci device interrupt line.
var DefaultPICOffsets = PICOffsets{Master: 32, Slave: 40}

// ReceiveBufferSize chooses between the RCTL field's buffer size (1024 B)
// and MAX_RECEIVE_LENGTH (16,384 B): use the RCTL value, and treat any
// larger packet as truncated rather than trying to size buffers to the
// larger constant.
const ReceiveBufferSize = 1024

// MaxTransmitLength is MAX_TX_LEN: the largest buffer Transmit will accept
// in one descriptor.
const MaxTransmitLength = 16384

// TxRingSize and RxRingSize are the e1000 ring lengths, fixed at 256
// entries.
const (
	TxRingSize = 256
	RxRingSize = 256
)
