package multiboot_test

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"mazarin/internal/multiboot"
)

// buildInfo assembles a synthetic Multiboot2 information structure with one
// memory-map tag (two entries) followed by the terminating End tag.
func buildInfo(entries []multiboot.MemoryMapEntry) []byte {
	const entrySize = 24 // base_addr(8) + length(8) + type(4) + reserved(4)

	var buf []byte
	appendU32 := func(v uint32) { buf = binary.LittleEndian.AppendUint32(buf, v) }
	appendU64 := func(v uint64) { buf = binary.LittleEndian.AppendUint64(buf, v) }

	// info header: total_size, reserved
	appendU32(0) // patched below
	appendU32(0)

	// memory map tag
	mmTagSize := uint32(8 + 8 + uintptr(len(entries))*entrySize) // type+size, entry_size+entry_version, entries
	appendU32(uint32(multiboot.TagMemoryMap))
	appendU32(mmTagSize)
	appendU32(entrySize)
	appendU32(0) // entry_version
	for _, e := range entries {
		appendU64(e.BaseAddr)
		appendU64(e.Length)
		appendU32(uint32(e.Type))
		appendU32(0)
	}
	// pad to 8-byte alignment
	for len(buf)%8 != 0 {
		buf = append(buf, 0)
	}

	// end tag
	appendU32(uint32(multiboot.TagEnd))
	appendU32(8)

	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(buf)))
	return buf
}

func TestMemoryMapEntriesRoundTrip(t *testing.T) {
	want := []multiboot.MemoryMapEntry{
		{BaseAddr: 0x0, Length: 0x9FC00, Type: multiboot.MemoryAvailable},
		{BaseAddr: 0x100000, Length: 0xF00000, Type: multiboot.MemoryAvailable},
	}
	buf := buildInfo(want)

	info := multiboot.NewInfo(unsafe.Pointer(&buf[0]))
	entries, ok := info.MemoryMapEntries()
	require.True(t, ok)
	require.Len(t, entries, 2)
	require.Equal(t, want[0].BaseAddr, entries[0].BaseAddr)
	require.Equal(t, want[1].Length, entries[1].Length)
}

func TestLargestAvailableRegionPicksBiggest(t *testing.T) {
	entries := []multiboot.MemoryMapEntry{
		{BaseAddr: 0x0, Length: 0x1000, Type: multiboot.MemoryAvailable},
		{BaseAddr: 0x100000, Length: 0x1000000, Type: multiboot.MemoryAvailable},
		{BaseAddr: 0xF00000, Length: 0x2000000, Type: multiboot.MemoryReserved},
	}
	best, ok := multiboot.LargestAvailableRegion(entries)
	require.True(t, ok)
	require.Equal(t, uint64(0x100000), best.BaseAddr)
	require.Equal(t, uint64(0x1000000), best.Length)
}

func TestLargestAvailableRegionNoneAvailable(t *testing.T) {
	entries := []multiboot.MemoryMapEntry{
		{BaseAddr: 0x0, Length: 0x1000, Type: multiboot.MemoryReserved},
	}
	_, ok := multiboot.LargestAvailableRegion(entries)
	require.False(t, ok)
}
