package console_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mazarin/internal/console"
	"mazarin/internal/cpu"
)

func readCell(t *testing.T, row, col int) (ascii, attribute uint8) {
	t.Helper()
	addr := uintptr(console.Base + 2*(row*console.Columns+col))
	dword := cpu.MMIORead32(addr &^ 0x3)
	shift := (addr & 0x3) * 8
	cell := (dword >> shift) & 0xFFFF
	return uint8(cell), uint8(cell >> 8)
}

func TestPutCharWritesAsciiAndAttribute(t *testing.T) {
	attr := console.Attribute(console.White, console.Blue)
	c := console.New(attr)

	c.PutChar('A')

	ascii, attribute := readCell(t, 0, 0)
	require.Equal(t, uint8('A'), ascii)
	require.Equal(t, attr, attribute)
}

func TestNewlineMovesToNextRow(t *testing.T) {
	c := console.New(console.Attribute(console.White, console.Black))
	c.WriteString("hi\nthere")

	ascii, _ := readCell(t, 1, 0)
	require.Equal(t, uint8('t'), ascii)
}

func TestAttributePacksBackgroundHighNibble(t *testing.T) {
	require.Equal(t, uint8(0x1F), console.Attribute(console.White, console.Blue))
}
