// Package reset triggers machine resets through the reset control register.
package reset

import (
	"github.com/pkg/errors"

	"github.com/hexaflex/zxreset/devices"
	"github.com/hexaflex/zxreset/devices/zxn/regs"
)

// Reset modes understood by the reset register. Other values are passed
// through unchanged.
const (
	ModeSoft = 0x01
	ModeHard = 0x02
)

// ErrNotSupported is returned when a reset request returned control to the
// caller instead of resetting the machine.
var ErrNotSupported = errors.New("reset not supported")

// Device drives the reset control register.
type Device struct {
	regs devices.Registers
}

var _ devices.Device = &Device{}

// New creates a new, unconnected device.
func New() *Device {
	return &Device{}
}

func (d *Device) ID() devices.ID {
	return devices.NewID(devices.ZXN, 0x0002)
}

func (d *Device) Startup(r devices.Registers) error {
	d.regs = r
	return nil
}

func (d *Device) Shutdown() error {
	d.regs = nil
	return nil
}

// Trigger writes mode to the reset register. On real hardware this does not
// return. If it does, the reset did not happen and ErrNotSupported is returned.
func (d *Device) Trigger(mode uint8) error {
	d.regs.SetU8(regs.Reset, mode)
	return errors.Wrapf(ErrNotSupported, "mode 0x%02x", mode)
}
