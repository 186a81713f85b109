package eth

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArpRequestEncodingMatchesRFC826Example(t *testing.T) {
	packet := ArpPacket{
		HardwareType:          HardwareEthernet,
		ProtocolType:          TypeIPv4,
		HardwareLen:           6,
		ProtocolLen:           4,
		Operation:             OpRequest,
		SenderHardwareAddress: []byte{0x52, 0x54, 0x00, 0x12, 0x34, 0x56},
		SenderProtocolAddress: []byte{1, 1, 1, 1},
		TargetHardwareAddress: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		TargetProtocolAddress: []byte{10, 0, 2, 2},
	}

	encoded := packet.Encode()

	require.Len(t, encoded, 28)
	require.Equal(t, []byte{
		0x00, 0x01, // htype = Ethernet
		0x08, 0x00, // ptype = IPv4
		0x06,       // hlen
		0x04,       // plen
		0x00, 0x01, // op = request
		0x52, 0x54, 0x00, 0x12, 0x34, 0x56, // sha
		0x01, 0x01, 0x01, 0x01, // spa
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, // tha
		0x0A, 0x00, 0x02, 0x02, // tpa
	}, encoded)
}

func TestArpRoundTrip(t *testing.T) {
	packet := ArpPacket{
		HardwareType:          HardwareEthernet,
		ProtocolType:          TypeIPv4,
		HardwareLen:           6,
		ProtocolLen:           4,
		Operation:             OpReply,
		SenderHardwareAddress: []byte{1, 2, 3, 4, 5, 6},
		SenderProtocolAddress: []byte{10, 0, 0, 1},
		TargetHardwareAddress: []byte{7, 8, 9, 10, 11, 12},
		TargetProtocolAddress: []byte{10, 0, 0, 2},
	}

	decoded, err := ParseArp(packet.Encode())
	require.NoError(t, err)
	require.Equal(t, packet, decoded)
}

func TestEthernetFrameWithCRCMatchesSeededScenario(t *testing.T) {
	arpPayload := ArpPacket{
		HardwareType:          HardwareEthernet,
		ProtocolType:          TypeIPv4,
		HardwareLen:           6,
		ProtocolLen:           4,
		Operation:             OpRequest,
		SenderHardwareAddress: []byte{0x52, 0x54, 0x00, 0x12, 0x34, 0x56},
		SenderProtocolAddress: []byte{1, 1, 1, 1},
		TargetHardwareAddress: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		TargetProtocolAddress: []byte{10, 0, 2, 2},
	}.Encode()
	require.Len(t, arpPayload, 28)

	frame := Frame{
		Destination: Broadcast,
		Source:      Address{0x52, 0x54, 0x00, 0x12, 0x34, 0x56},
		EtherType:   TypeARP,
		Payload:     arpPayload,
	}

	encoded := frame.Encode(true)
	require.Len(t, encoded, 46)

	wantCRC := crc32.Checksum(encoded[:42], crc32ISOHDLC)
	gotCRC := uint32(encoded[42])<<24 | uint32(encoded[43])<<16 | uint32(encoded[44])<<8 | uint32(encoded[45])
	require.Equal(t, wantCRC, gotCRC)
}

func TestEthernetFrameRoundTripWithCRC(t *testing.T) {
	frame := Frame{
		Destination: Broadcast,
		Source:      Address{1, 2, 3, 4, 5, 6},
		EtherType:   TypeIPv4,
		Payload:     []byte("some ip datagram bytes"),
	}

	encoded := frame.Encode(true)
	decoded, err := Parse(encoded, true)

	require.NoError(t, err)
	require.Equal(t, frame.Destination, decoded.Destination)
	require.Equal(t, frame.Source, decoded.Source)
	require.Equal(t, frame.EtherType, decoded.EtherType)
	require.Equal(t, frame.Payload, decoded.Payload)
}

func TestEthernetFrameRoundTripWithoutCRC(t *testing.T) {
	frame := Frame{
		Destination: Address{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
		Source:      Address{1, 1, 1, 1, 1, 1},
		EtherType:   TypeARP,
		Payload:     []byte{1, 2, 3, 4},
	}

	encoded := frame.Encode(false)
	require.Len(t, encoded, headerLen+4)

	decoded, err := Parse(encoded, false)
	require.NoError(t, err)
	require.Equal(t, frame.Payload, decoded.Payload)
}

func TestParseDetectsCRCMismatch(t *testing.T) {
	frame := Frame{
		Destination: Broadcast,
		Source:      Address{1, 2, 3, 4, 5, 6},
		EtherType:   TypeIPv4,
		Payload:     []byte("payload"),
	}
	encoded := frame.Encode(true)
	encoded[len(encoded)-1] ^= 0xFF

	_, err := Parse(encoded, true)
	require.Error(t, err)
}

func TestParseRejectsShortFrame(t *testing.T) {
	_, err := Parse([]byte{1, 2, 3}, false)
	require.Error(t, err)
}
