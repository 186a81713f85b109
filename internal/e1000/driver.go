package e1000

import (
	"errors"
	"unsafe"

	"mazarin/internal/bitfield"
	"mazarin/internal/bootconfig"
)

var (
	// ErrFullTransmissionsQueue is returned by Transmit when the descriptor
	// at the current tail has not yet been written back by the NIC.
	ErrFullTransmissionsQueue = errors.New("e1000: full transmissions queue")
	// ErrBufferTooLarge is returned by Transmit when buf exceeds MaxTransmitLength.
	ErrBufferTooLarge = errors.New("e1000: buffer too large")
)

// MaxTransmitLength is the largest single transmit buffer this driver will
// hand to the NIC in one descriptor.
const MaxTransmitLength = bootconfig.MaxTransmitLength

// tctlConfig is the TCTL register layout, field widths per the Intel 8254x
// software developer's manual, packed low-field-first by bitfield.Pack.
type tctlConfig struct {
	_                  uint8  `bitfield:",1"` // reserved
	Enabled            uint8  `bitfield:",1"` // EN
	_                  uint8  `bitfield:",1"` // reserved
	PadShortPackets    uint8  `bitfield:",1"` // PSP
	CollisionThreshold uint8  `bitfield:",8"` // CT
	CollisionDistance  uint16 `bitfield:",10"` // COLD
}

// tipgConfig is the TIPG register layout: three 10-bit inter-packet-gap
// timer fields.
type tipgConfig struct {
	IPGT  uint16 `bitfield:",10"`
	IPGR1 uint16 `bitfield:",10"`
	IPGR2 uint16 `bitfield:",10"`
}

// rctlConfig is the RCTL register layout, per the Intel 8254x software
// developer's manual.
type rctlConfig struct {
	_                    uint8 `bitfield:",1"` // reserved
	Enabled              uint8 `bitfield:",1"` // EN
	StoreBadPackets      uint8 `bitfield:",1"` // SBP
	UnicastPromiscuous   uint8 `bitfield:",1"` // UPE
	MulticastPromiscuous uint8 `bitfield:",1"` // MPE
	_                    uint8 `bitfield:",1"` // LPE, unused
	LoopbackMode         uint8 `bitfield:",2"` // LBM
	ReceiveDescThreshold uint8 `bitfield:",2"` // RDMTS
	_                    uint8 `bitfield:",5"` // reserved / MO
	AcceptBroadcast      uint8 `bitfield:",1"` // BAM
	BufferSize           uint8 `bitfield:",2"` // BSIZE
	_                    uint8 `bitfield:",7"` // reserved
	BufferSizeExtension  uint8 `bitfield:",1"` // BSEX
	StripCRC             uint8 `bitfield:",1"` // SECRC
}

var registerConfig = &bitfield.Config{NumBits: 32}

// Driver owns the descriptor rings and MMIO register bank for one e1000
// NIC instance.
type Driver struct {
	regs regs

	txRing  []TxDescriptor
	txTail  int

	rxRing    []RxDescriptor
	rxBuffers [][]byte
	rxTail    int

	mac           [6]byte
	interruptLine uint8
}

// New constructs a driver bound to BAR0's memory-mapped base address.
func New(mmioBase uintptr) *Driver {
	return &Driver{regs: regs{base: mmioBase}}
}

func physAddr[T any](p *T) uint64 {
	return uint64(uintptr(unsafe.Pointer(p)))
}

// Init brings the NIC up: MAC read, TX ring program, RX ring program,
// descriptor reset.
func (d *Driver) Init(interruptLine uint8) {
	d.interruptLine = interruptLine
	d.mac = d.regs.readMAC()
	d.initTransmit()
	d.initReceive()
}

// MACAddress returns the address read from the EEPROM during Init.
func (d *Driver) MACAddress() [6]byte { return d.mac }

func (d *Driver) initTransmit() {
	d.txRing = make([]TxDescriptor, bootconfig.TxRingSize)
	for i := range d.txRing {
		d.txRing[i] = emptyTxDescriptor()
	}

	ringAddr := physAddr(&d.txRing[0])
	d.regs.write(regTDBAL, uint32(ringAddr))
	d.regs.write(regTDBAH, uint32(ringAddr>>32))
	d.regs.write(regTDLEN, uint32(len(d.txRing))*16)
	d.regs.write(regTDH, 0)
	d.regs.write(regTDT, 0)

	tctl, err := bitfield.Pack(tctlConfig{
		Enabled:            1,
		PadShortPackets:    1,
		CollisionThreshold: 0xF,
		CollisionDistance:  0x40,
	}, registerConfig)
	if err != nil {
		panic(err)
	}
	d.regs.write(regTCTL, uint32(tctl))

	tipg, err := bitfield.Pack(tipgConfig{IPGT: 10, IPGR1: 8, IPGR2: 6}, registerConfig)
	if err != nil {
		panic(err)
	}
	d.regs.write(regTIPG, uint32(tipg))

	d.txTail = 0
}

func (d *Driver) initReceive() {
	d.rxRing = make([]RxDescriptor, bootconfig.RxRingSize)
	d.rxBuffers = make([][]byte, bootconfig.RxRingSize)
	for i := range d.rxRing {
		buf := make([]byte, bootconfig.ReceiveBufferSize)
		d.rxBuffers[i] = buf
		d.rxRing[i] = RxDescriptor{BaseAddress: physAddr(&buf[0])}
	}

	ringAddr := physAddr(&d.rxRing[0])
	d.regs.write(regRDBAL, uint32(ringAddr))
	d.regs.write(regRDBAH, uint32(ringAddr>>32))
	d.regs.write(regRDLEN, uint32(len(d.rxRing))*16)
	d.regs.write(regRDH, 0)
	d.regs.write(regRDT, uint32(len(d.rxRing)-1))

	ral := uint32(d.mac[0]) | uint32(d.mac[1])<<8 | uint32(d.mac[2])<<16 | uint32(d.mac[3])<<24
	rah := uint32(d.mac[4]) | uint32(d.mac[5])<<8 | rahAddressValid
	d.regs.write(regRAL0, ral)
	d.regs.write(regRAH0, rah)

	for i := uint32(0); i < mtaEntryCount; i++ {
		d.regs.write(regMTA+uintptr(i*4), 0)
	}

	rctl, err := bitfield.Pack(rctlConfig{
		Enabled:              1,
		StoreBadPackets:      1,
		UnicastPromiscuous:   1,
		MulticastPromiscuous: 1,
		ReceiveDescThreshold: 1,
		AcceptBroadcast:      1,
		BufferSize:           3, // BSIZE=11 with BSEX=1: 1024-byte buffers
		BufferSizeExtension:  1,
	}, registerConfig)
	if err != nil {
		panic(err)
	}
	d.regs.write(regRCTL, uint32(rctl))

	d.rxTail = len(d.rxRing) - 1
}

// Transmit enqueues buf onto the TX ring. last marks the final fragment of
// a frame (clearing END_OF_PACKET for any earlier fragment), per the
// redesigned last_packet semantics.
func (d *Driver) Transmit(buf []byte, last bool) error {
	if len(buf) > MaxTransmitLength {
		return ErrBufferTooLarge
	}

	desc := &d.txRing[d.txTail]
	if desc.Status&TxDescriptorDone == 0 {
		return ErrFullTransmissionsQueue
	}

	desc.Status &^= TxDescriptorDone
	desc.BaseAddress = physAddr(&buf[0])
	desc.Length = uint16(len(buf))
	command := CmdReportStatus
	if last {
		command |= CmdEndOfPacket
	}
	desc.Command = command

	d.txTail = (d.txTail + 1) % len(d.txRing)
	d.regs.write(regTDT, uint32(d.txTail))
	return nil
}

// completeTransmit simulates the NIC writing back DESCRIPTOR_DONE on the
// slot at index, used by tests to exercise ring wraparound without real
// hardware.
func (d *Driver) completeTransmit(index int) {
	d.txRing[index].Status |= TxDescriptorDone
}

// Receive drains any descriptors the NIC has marked DESCRIPTOR_DONE since
// the last call, returning their packet bytes (truncated to the reported
// length) and advancing RDT so the NIC can reuse the slots.
func (d *Driver) Receive() [][]byte {
	var packets [][]byte
	next := (d.rxTail + 1) % len(d.rxRing)

	for d.rxRing[next].Status&RxDescriptorDone != 0 {
		desc := &d.rxRing[next]
		length := desc.Length
		if int(length) > len(d.rxBuffers[next]) {
			length = uint16(len(d.rxBuffers[next]))
		}
		packet := make([]byte, length)
		copy(packet, d.rxBuffers[next][:length])
		packets = append(packets, packet)

		desc.Status &^= RxDescriptorDone
		d.rxTail = next
		d.regs.write(regRDT, uint32(d.rxTail))
		next = (d.rxTail + 1) % len(d.rxRing)
	}

	return packets
}

// deliverPacket simulates the NIC depositing a received frame into the
// slot after rxTail and setting DESCRIPTOR_DONE, used by tests.
func (d *Driver) deliverPacket(data []byte) {
	next := (d.rxTail + 1) % len(d.rxRing)
	n := copy(d.rxBuffers[next], data)
	d.rxRing[next].Length = uint16(n)
	d.rxRing[next].Status |= RxDescriptorDone | RxEndOfPacket
}
