package e1000

// TransmissionCommand is the per-descriptor command byte the driver writes.
type TransmissionCommand uint8

const (
	CmdEndOfPacket     TransmissionCommand = 1 << 0
	CmdInsertFCS       TransmissionCommand = 1 << 1
	CmdInsertChecksum  TransmissionCommand = 1 << 2
	CmdReportStatus    TransmissionCommand = 1 << 3
	CmdReportPacketSent TransmissionCommand = 1 << 4
	CmdDescExtension   TransmissionCommand = 1 << 5
	CmdVLANEnable      TransmissionCommand = 1 << 6
	CmdInterruptDelay  TransmissionCommand = 1 << 7
)

// TransmissionStatus is the per-descriptor status byte the NIC writes back.
type TransmissionStatus uint8

const (
	TxDescriptorDone  TransmissionStatus = 1 << 4
	TxExcessCollisions TransmissionStatus = 1 << 5
	TxLateCollision   TransmissionStatus = 1 << 6
	TxUnderrun        TransmissionStatus = 1 << 7
)

// TxDescriptor is the 16-byte legacy transmit descriptor layout, matching
// the hardware's packed field order exactly so it can be placed directly in
// DMA-visible memory.
type TxDescriptor struct {
	BaseAddress uint64
	Length      uint16
	CSO         uint8
	Command     TransmissionCommand
	Status      TransmissionStatus
	CSS         uint8
	Special     uint16
}

// emptyTxDescriptor is the reset state for a ring slot: DONE set so the
// first Transmit call sees a free slot.
func emptyTxDescriptor() TxDescriptor {
	return TxDescriptor{Command: CmdReportStatus, Status: TxDescriptorDone}
}

// ReceiveStatus is the per-descriptor status byte the NIC writes on
// delivery.
type ReceiveStatus uint8

const (
	RxDescriptorDone   ReceiveStatus = 1 << 0
	RxEndOfPacket      ReceiveStatus = 1 << 1
	RxIgnoreChecksum   ReceiveStatus = 1 << 2
	RxVLANPacket       ReceiveStatus = 1 << 3
	RxTCPChecksumValid ReceiveStatus = 1 << 5
	RxIPChecksumValid  ReceiveStatus = 1 << 6
	RxPassedInExact    ReceiveStatus = 1 << 7
)

// ReceiveError is the per-descriptor error byte the NIC writes on delivery.
type ReceiveError uint8

const (
	RxErrCRCOrAlignment     ReceiveError = 1 << 0
	RxErrSymbol             ReceiveError = 1 << 1
	RxErrSequence           ReceiveError = 1 << 2
	RxErrCarrierExtension   ReceiveError = 1 << 4
	RxErrTCPUDPChecksum     ReceiveError = 1 << 5
	RxErrIPChecksum         ReceiveError = 1 << 6
	RxErrData               ReceiveError = 1 << 7
)

// RxDescriptor is the 16-byte legacy receive descriptor layout.
type RxDescriptor struct {
	BaseAddress    uint64
	Length         uint16
	PacketChecksum uint16
	Status         ReceiveStatus
	Errors         ReceiveError
	Special        uint16
}
