package eth

import "fmt"

// Operation is the ARP opcode, per RFC 826.
type Operation uint16

const (
	OpRequest Operation = 1
	OpReply   Operation = 2
)

// HardwareType identifies the link-layer addressing scheme.
type HardwareType uint16

const HardwareEthernet HardwareType = 1

// ArpPacket is a decoded ARP packet; sender/target address slices are
// exactly HardwareLen/ProtocolLen bytes each, per RFC 826.
type ArpPacket struct {
	HardwareType HardwareType
	ProtocolType EtherType
	HardwareLen  uint8
	ProtocolLen  uint8
	Operation    Operation

	SenderHardwareAddress []byte
	SenderProtocolAddress []byte
	TargetHardwareAddress []byte
	TargetProtocolAddress []byte
}

// Encode serializes the packet per RFC 826's field order, all multi-byte
// fields big-endian: htype(2) ptype(2) hlen(1) plen(1) op(2) sha(hlen)
// spa(plen) tha(hlen) tpa(plen).
func (p ArpPacket) Encode() []byte {
	size := 8 + 2*int(p.HardwareLen) + 2*int(p.ProtocolLen)
	out := make([]byte, 0, size)

	out = append(out, byte(p.HardwareType>>8), byte(p.HardwareType))
	out = append(out, byte(p.ProtocolType>>8), byte(p.ProtocolType))
	out = append(out, p.HardwareLen, p.ProtocolLen)
	out = append(out, byte(p.Operation>>8), byte(p.Operation))
	out = append(out, p.SenderHardwareAddress...)
	out = append(out, p.SenderProtocolAddress...)
	out = append(out, p.TargetHardwareAddress...)
	out = append(out, p.TargetProtocolAddress...)

	return out
}

var errArpTooShort = fmt.Errorf("eth: arp packet shorter than fixed header")

// ParseArp decodes an ARP packet from buf.
func ParseArp(buf []byte) (ArpPacket, error) {
	if len(buf) < 8 {
		return ArpPacket{}, errArpTooShort
	}

	var p ArpPacket
	p.HardwareType = HardwareType(uint16(buf[0])<<8 | uint16(buf[1]))
	p.ProtocolType = EtherType(uint16(buf[2])<<8 | uint16(buf[3]))
	p.HardwareLen = buf[4]
	p.ProtocolLen = buf[5]
	p.Operation = Operation(uint16(buf[6])<<8 | uint16(buf[7]))

	need := 8 + 2*int(p.HardwareLen) + 2*int(p.ProtocolLen)
	if len(buf) < need {
		return ArpPacket{}, errArpTooShort
	}

	offset := 8
	p.SenderHardwareAddress = append([]byte(nil), buf[offset:offset+int(p.HardwareLen)]...)
	offset += int(p.HardwareLen)
	p.SenderProtocolAddress = append([]byte(nil), buf[offset:offset+int(p.ProtocolLen)]...)
	offset += int(p.ProtocolLen)
	p.TargetHardwareAddress = append([]byte(nil), buf[offset:offset+int(p.HardwareLen)]...)
	offset += int(p.HardwareLen)
	p.TargetProtocolAddress = append([]byte(nil), buf[offset:offset+int(p.ProtocolLen)]...)

	return p, nil
}
