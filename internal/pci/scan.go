package pci

const (
	maxBus    = 256
	maxDevice = 32
)

// Device identifies one enumerated function and its decoded BAR0-5.
type Device struct {
	Bus, Device uint8
	VendorID    uint16
	DeviceID    uint16
	BARs        [6]BAR
	InterruptLine uint8
}

// Driver binds a (vendor, device) pair to an initializer invoked when Scan
// finds a matching device: a generic registry keyed on PCI identity instead
// of a hardcoded single-device probe.
type Driver struct {
	VendorID uint16
	DeviceID uint16
	Init     func(Device)
}

// Scan walks every (bus, device) slot, skipping absent functions
// (vendor_id == 0xFFFF), and invokes the Init of the first matching driver
// for each device found. It returns every device it enumerated regardless
// of whether a driver claimed it.
func Scan(drivers []Driver) []Device {
	var found []Device

	for bus := 0; bus < maxBus; bus++ {
		for dev := 0; dev < maxDevice; dev++ {
			b, d := uint8(bus), uint8(dev)
			vendorID := ReadWord(b, d, 0, VendorIDOffset)
			if vendorID == invalidVendorID {
				continue
			}

			device := Device{
				Bus:           b,
				Device:        d,
				VendorID:      vendorID,
				DeviceID:      ReadWord(b, d, 0, DeviceIDOffset),
				InterruptLine: ReadByte(b, d, 0, InterruptLineOffset),
			}
			for i := 0; i < len(device.BARs); i++ {
				bar := ReadBAR(b, d, 0, i)
				device.BARs[i] = bar
				if bar.Kind == BARMemorySpace64 {
					i++
					if i < len(device.BARs) {
						device.BARs[i] = BAR{Kind: BAREmpty}
					}
				}
			}
			found = append(found, device)

			for _, drv := range drivers {
				if drv.VendorID == device.VendorID && drv.DeviceID == device.DeviceID {
					drv.Init(device)
					break
				}
			}
		}
	}

	return found
}
