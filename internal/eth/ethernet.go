// Package eth implements Ethernet frame and ARP packet encoding/decoding,
// with an optional trailing CRC-32/ISO-HDLC checksum.
package eth

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Address is a 6-byte Ethernet hardware address.
type Address [6]byte

// Broadcast is the all-ones Ethernet broadcast address.
var Broadcast = Address{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

func (a Address) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", a[0], a[1], a[2], a[3], a[4], a[5])
}

// EtherType is the 2-byte payload-protocol tag carried after the source
// address.
type EtherType uint16

const (
	TypeIPv4 EtherType = 0x0800
	TypeARP  EtherType = 0x0806
)

// crc32ISOHDLC is the CRC-32/ISO-HDLC table: polynomial 0x04C11DB7,
// reflected input/output, the same construction as IEEE 802.3's frame
// check sequence and bit-for-bit stdlib's crc32.IEEETable.
var crc32ISOHDLC = crc32.IEEETable

// Frame is a parsed Ethernet II frame.
type Frame struct {
	Destination Address
	Source      Address
	EtherType   EtherType
	Payload     []byte
}

// headerLen is destination(6) + source(6) + ethertype(2).
const headerLen = 14

// Encode serializes the frame as destination | source | big-endian
// ethertype | payload, optionally appending a 4-byte big-endian CRC-32/
// ISO-HDLC over everything preceding it.
func (f Frame) Encode(addCRC bool) []byte {
	out := make([]byte, 0, headerLen+len(f.Payload)+4)
	out = append(out, f.Destination[:]...)
	out = append(out, f.Source[:]...)
	out = append(out, byte(f.EtherType>>8), byte(f.EtherType))
	out = append(out, f.Payload...)

	if addCRC {
		sum := crc32.Checksum(out, crc32ISOHDLC)
		var sumBytes [4]byte
		binary.BigEndian.PutUint32(sumBytes[:], sum)
		out = append(out, sumBytes[:]...)
	}

	return out
}

// errFrameTooShort is returned by Parse when buf is shorter than a minimal
// header.
var errFrameTooShort = fmt.Errorf("eth: frame shorter than header")

// Parse decodes an Ethernet II frame from buf. If hasCRC is true the
// trailing 4 bytes are treated as a big-endian CRC-32/ISO-HDLC over the
// preceding bytes and verified; a mismatch is reported as an error.
func Parse(buf []byte, hasCRC bool) (Frame, error) {
	if len(buf) < headerLen {
		return Frame{}, errFrameTooShort
	}

	payload := buf[headerLen:]
	if hasCRC {
		if len(payload) < 4 {
			return Frame{}, errFrameTooShort
		}
		body := buf[:len(buf)-4]
		want := binary.BigEndian.Uint32(buf[len(buf)-4:])
		got := crc32.Checksum(body, crc32ISOHDLC)
		if got != want {
			return Frame{}, fmt.Errorf("eth: CRC mismatch: got %08x want %08x", got, want)
		}
		payload = payload[:len(payload)-4]
	}

	var f Frame
	copy(f.Destination[:], buf[0:6])
	copy(f.Source[:], buf[6:12])
	f.EtherType = EtherType(binary.BigEndian.Uint16(buf[12:14]))
	f.Payload = payload
	return f, nil
}
