package gdt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mazarin/internal/gdt"
)

func TestBuildProducesThreeEntries(t *testing.T) {
	table := gdt.Build()
	require.Len(t, table, 3)
	require.Equal(t, gdt.Entry{}, table[gdt.NullSegmentIndex])
}

func TestCodeAndDataSegmentsSpanFullLimit(t *testing.T) {
	table := gdt.Build()
	code := table[gdt.CodeSegmentIndex]
	data := table[gdt.DataSegmentIndex]

	require.Equal(t, uint16(0xFFFF), code.LimitLower)
	require.Equal(t, uint16(0xFFFF), data.LimitLower)

	// flags byte: low nibble is limit_high (0xF for a 0xFFFFF limit)
	require.Equal(t, uint8(0xF), code.Flags&0xF)
	require.Equal(t, uint8(0xF), data.Flags&0xF)
}

func TestCodeSegmentIsExecutableDataIsNot(t *testing.T) {
	table := gdt.Build()
	code := table[gdt.CodeSegmentIndex]
	data := table[gdt.DataSegmentIndex]

	const executableBit = 1 << 3
	require.NotZero(t, code.Access&executableBit)
	require.Zero(t, data.Access&executableBit)
}

func TestDescriptorForReportsTableSizeMinusOne(t *testing.T) {
	table := gdt.Build()
	desc := gdt.DescriptorFor(0x1000, table)
	require.Equal(t, uint16(3*8-1), desc.Size)
	require.Equal(t, uint32(0x1000), desc.Offset)
}
