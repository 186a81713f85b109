package bitfield_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"mazarin/internal/bitfield"
)

type pageFlags struct {
	Allocated  bool   `bitfield:",1"`
	KernelPage bool   `bitfield:",1"`
	Reserved   uint32 `bitfield:",30"`
}

func TestPackUnpackRoundTrip(t *testing.T) {
	flags := pageFlags{Allocated: true, KernelPage: false, Reserved: 0x1234}

	packed, err := bitfield.Pack(flags, &bitfield.Config{NumBits: 32})
	require.NoError(t, err)

	var got pageFlags
	require.NoError(t, bitfield.Unpack(packed, &got))
	require.Equal(t, flags, got)
}

func TestPackOverflowingFieldErrors(t *testing.T) {
	type tooNarrow struct {
		Value uint32 `bitfield:",2"`
	}
	_, err := bitfield.Pack(tooNarrow{Value: 9}, nil)
	require.Error(t, err)
}

func TestPackExceedingNumBitsErrors(t *testing.T) {
	type wide struct {
		A uint32 `bitfield:",20"`
		B uint32 `bitfield:",20"`
	}
	_, err := bitfield.Pack(wide{}, &bitfield.Config{NumBits: 32})
	require.Error(t, err)
}

func TestFieldsWithoutTagAreSkipped(t *testing.T) {
	type mixed struct {
		Untagged int
		Tagged   bool `bitfield:",1"`
	}
	packed, err := bitfield.Pack(mixed{Untagged: 999, Tagged: true}, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1), packed)
}

func ExamplePack() {
	flags := pageFlags{Allocated: true, KernelPage: false, Reserved: 0}

	packed, err := bitfield.Pack(flags, &bitfield.Config{NumBits: 32})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Packed flags: 0x%08x\n", packed)

	// Output:
	// Packed flags: 0x00000001
}
