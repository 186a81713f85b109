// Command kernel is the freestanding entry point: KernelMain wires up the
// boot sequence (GDT → IDT → memory discovery → allocators → PIC → PCI →
// e1000 → interrupts enabled → idle), and main is the dummy retained so the
// linker keeps KernelMain even though the real boot assembly calls it
// directly, a c-archive-style dummy main.
package main

import (
	"unsafe"

	"mazarin/internal/bootconfig"
	"mazarin/internal/buddy"
	"mazarin/internal/console"
	"mazarin/internal/cpu"
	"mazarin/internal/e1000"
	"mazarin/internal/gdt"
	"mazarin/internal/idt"
	"mazarin/internal/kernlog"
	"mazarin/internal/multiboot"
	"mazarin/internal/pci"
	"mazarin/internal/pic"
	"mazarin/internal/slab"
)

// gdtTable, idtTable and the allocators are package-level: they must
// outlive KernelMain's stack frame since the CPU keeps pointers into them
// (GDTR/IDTR) and subsequent interrupts reference the IDT long after
// KernelMain has stopped executing its setup code.
var (
	gdtTable [3]gdt.Entry
	idtTable idt.Table

	physAllocator *buddy.Allocator
	heap          *slab.Allocator

	logger *kernlog.Logger
	nic    *e1000.Driver
)

// codeSelector is the GDT code-segment selector: entry index 1, ring 0.
const codeSelector = 1 * 8

// KernelMain is called directly by the boot assembly stub after it has
// switched to protected mode and set up a stack.
func KernelMain(multibootInfoAddr uint32) {
	con := console.New(console.Attribute(console.White, console.Black))
	logger = kernlog.New(con)
	logger.Info("booting mazarin")

	installGDT()
	installIDT()

	logger.Info("gdt and idt installed")

	info := multiboot.NewInfo(unsafe.Pointer(uintptr(multibootInfoAddr)))
	initMemory(info)

	pic.Init(bootconfig.DefaultPICOffsets, bootconfig.DefaultPICMasks)
	logger.Info("pic remapped")

	devices := pci.Scan([]pci.Driver{
		{VendorID: 0x8086, DeviceID: 0x100E, Init: initE1000},
	})
	logger.Info("pci scan found " + kernlog.PutUint32(uint32(len(devices))) + " device(s)")

	cpu.EnableInterrupts()
	logger.Info("interrupts enabled, idling")

	for {
		cpu.Halt()
	}
}

func installGDT() {
	gdtTable = gdt.Build()
	gdt.Load(uintptr(unsafe.Pointer(&gdtTable[0])), gdtTable)
}

func installIDT() {
	installExceptionHandlers(&idtTable)
	idt.SetDefaultFatalHandler(func(info idt.ExceptionInfo) {
		logger.Panic("unhandled exception vector " + kernlog.PutUint32(uint32(info.Vector)) +
			" error code " + kernlog.PutHex32(info.ErrorCode) +
			" eip " + kernlog.PutHex32(info.Frame.InstructionPointer) +
			" cs " + kernlog.PutHex32(info.Frame.CodeSegment) +
			" eflags " + kernlog.PutHex32(info.Frame.Flags))
	})

	idt.Load(uintptr(unsafe.Pointer(&idtTable)), &idtTable)
}

func initMemory(info multiboot.Info) {
	entries, ok := info.MemoryMapEntries()
	if !ok {
		logger.Panic("no memory map tag in multiboot info")
		return
	}

	region, ok := multiboot.LargestAvailableRegion(entries)
	if !ok {
		logger.Panic("no available memory region reported")
		return
	}

	logger.Info("largest available region: " + kernlog.PutMemSize(region.Length) + " at " + kernlog.PutHex32(uint32(region.BaseAddr)))

	// The bitmaps live in whole smallest-class blocks reserved at the top of
	// the region; the buddy manages only what lies below them.
	regionSize := uint32(region.Length)
	bitmapBytes := buddy.BitmapBytesNeeded(regionSize)
	smallest := buddy.BlockSizes[0]
	reserved := (bitmapBytes + smallest - 1) / smallest * smallest
	managedSize := regionSize - reserved
	bitmapStorage := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(region.BaseAddr)+uintptr(managedSize))), bitmapBytes)
	physAllocator = buddy.New(uintptr(region.BaseAddr), managedSize, bitmapStorage)

	heap = slab.New()
	heap.Init(physAllocator)
	logger.Info("allocators ready")
}

func initE1000(dev pci.Device) {
	var mmioBase uint64
	for _, bar := range dev.BARs {
		if bar.Kind == pci.BARMemorySpace32 || bar.Kind == pci.BARMemorySpace64 {
			mmioBase = bar.Address
			break
		}
	}

	pci.EnableDevice(dev.Bus, dev.Device, 0)

	nic = e1000.New(uintptr(mmioBase))
	nic.Init(dev.InterruptLine)
	nic.EnableInterrupts(&idtTable, codeSelector, e1000InterruptHandlerAddr())

	mac := nic.MACAddress()
	logger.Info("e1000 found, mac " + macString(mac))
}

func macString(mac [6]byte) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 0, 17)
	for i, b := range mac {
		if i > 0 {
			buf = append(buf, ':')
		}
		buf = append(buf, hexDigits[b>>4], hexDigits[b&0xF])
	}
	return string(buf)
}

// e1000InterruptHandlerAddr resolves the address of the assembly trampoline
// that calls e1000InterruptHandler, installed at IDT slot 32+interrupt_line.
// In the freestanding build this is a linknamed label in boot.s; in the
// host simulation it is unused since no real interrupt ever fires.
func e1000InterruptHandlerAddr() uint32 {
	return 0
}

// e1000InterruptHandler is invoked by the assembly trampoline on the e1000's
// line. It drains received packets and issues EOI last.
func e1000InterruptHandler() {
	if nic == nil {
		return
	}
	packets := nic.HandleInterrupt(bootconfig.DefaultPICOffsets)
	for range packets {
		// Frame dispatch (ARP/IPv4 decode) happens above this driver layer;
		// this loop exists so received packets are drained even though
		// nothing yet consumes them.
	}
}

// main is never called on real hardware; boot.s jumps to KernelMain
// directly. It exists so the Go linker retains KernelMain and friends.
func main() {
	var keepers = []interface{}{
		KernelMain,
		e1000InterruptHandler,
	}
	_ = keepers
}
