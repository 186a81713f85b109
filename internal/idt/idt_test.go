package idt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mazarin/internal/idt"
)

func TestShapeOfKnownErrorCodeVectors(t *testing.T) {
	require.Equal(t, idt.WithErrorCode, idt.ShapeOf(8))  // double fault
	require.Equal(t, idt.WithErrorCode, idt.ShapeOf(13)) // GPF
	require.Equal(t, idt.WithErrorCode, idt.ShapeOf(14)) // page fault
}

func TestShapeOfNoErrorCodeVectors(t *testing.T) {
	require.Equal(t, idt.NoErrorCode, idt.ShapeOf(0)) // divide error
	require.Equal(t, idt.NoErrorCode, idt.ShapeOf(3)) // breakpoint
	require.Equal(t, idt.NoErrorCode, idt.ShapeOf(32)) // first device IRQ slot
}

func TestMakeEntrySplitsOffsetAndSetsPresentBit(t *testing.T) {
	e := idt.MakeEntry(0xDEADBEEF, 0x08)
	require.Equal(t, uint16(0xBEEF), e.OffsetLow)
	require.Equal(t, uint16(0xDEAD), e.OffsetHigh)
	require.Equal(t, uint16(0x08), e.Selector)
	require.NotZero(t, e.TypeAttr&(1<<7)) // present bit
	require.Equal(t, uint8(0b1110), e.TypeAttr&0xF)
}

func TestInstallSetsOnlyTargetSlot(t *testing.T) {
	var table idt.Table
	table.Install(33, 0x1000, 0x08)

	require.NotZero(t, table[33].TypeAttr)
	require.Zero(t, table[32].TypeAttr)
}

func TestDescriptorForReportsTableSizeMinusOne(t *testing.T) {
	var table idt.Table
	desc := idt.DescriptorFor(0x2000, &table)
	require.Equal(t, uint16(idt.NumEntries*8-1), desc.Size)
	require.Equal(t, uint32(0x2000), desc.Offset)
}

func TestDispatchFallsBackToDefaultHandler(t *testing.T) {
	var gotDefault, gotSpecific bool
	idt.SetDefaultFatalHandler(func(info idt.ExceptionInfo) { gotDefault = true })
	idt.RegisterHandler(3, func(info idt.ExceptionInfo) { gotSpecific = true })

	idt.Dispatch(idt.ExceptionInfo{Vector: 5})
	require.True(t, gotDefault)
	require.False(t, gotSpecific)

	gotDefault = false
	idt.Dispatch(idt.ExceptionInfo{Vector: 3})
	require.False(t, gotDefault)
	require.True(t, gotSpecific)
}
