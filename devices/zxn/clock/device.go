// Package clock controls the Z80N CPU clock.
package clock

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/zxreset/devices"
	"github.com/hexaflex/zxreset/devices/zxn/regs"
)

// Speed selects one of the CPU clock frequencies.
type Speed byte

// Known clock speeds.
const (
	Speed3M5 Speed = iota // 3.5 MHz
	Speed7M               // 7 MHz
	Speed14M              // 14 MHz
	Speed28M              // 28 MHz
)

// speedMask selects the programmed speed bits of the speed register.
const speedMask = 0x03

// Frequency returns the clock frequency in herz.
func (s Speed) Frequency() float64 {
	return 3.5e6 * float64(uint(1)<<(s&speedMask))
}

func (s Speed) String() string {
	return prettyFrequency(s.Frequency())
}

// ParseSpeed parses a speed name like "28mhz", "3.5MHz" or "14".
func ParseSpeed(v string) (Speed, error) {
	v = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(v)), "mhz")
	switch strings.TrimSpace(v) {
	case "3.5", "3":
		return Speed3M5, nil
	case "7":
		return Speed7M, nil
	case "14":
		return Speed14M, nil
	case "28":
		return Speed28M, nil
	}
	return 0, errors.Errorf("unknown cpu speed %q", v)
}

// Device reads and writes the CPU speed register.
type Device struct {
	regs devices.Registers
}

var _ devices.Device = &Device{}

// New creates a new, unconnected device.
func New() *Device {
	return &Device{}
}

func (d *Device) ID() devices.ID {
	return devices.NewID(devices.ZXN, 0x0007)
}

func (d *Device) Startup(r devices.Registers) error {
	d.regs = r
	return nil
}

func (d *Device) Shutdown() error {
	d.regs = nil
	return nil
}

// Speed returns the currently programmed clock speed.
func (d *Device) Speed() Speed {
	return Speed(d.regs.U8(regs.CPUSpeed) & speedMask)
}

// SetSpeed programs a new clock speed.
func (d *Device) SetSpeed(s Speed) {
	d.regs.SetU8(regs.CPUSpeed, byte(s&speedMask))
}

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
