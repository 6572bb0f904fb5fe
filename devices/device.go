package devices

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Device represents a peripheral which is controlled through
// the machine's register file.
type Device interface {
	// ID yields the manufacturer and serial number for the device.
	ID() ID

	// Startup initializes internal resources.
	//
	// Registers is the register file the device reads from and
	// writes to for as long as it is running.
	Startup(Registers) error

	// Shutdown cleans up internal resources.
	Shutdown() error
}

// Map contains a list of registered peripherals.
type Map []Device

// Connect adds the given device to the device map.
// Returns false if the device type is already present in the set.
func (dm *Map) Connect(dev Device) bool {
	if (*dm).Find(dev.ID()) > -1 {
		return false
	}

	*dm = append(*dm, dev)
	return true
}

// Startup initializes internal resources of all devices.
// A failing device does not keep the others from starting.
func (dm Map) Startup(r Registers) error {
	var err error

	for _, dev := range dm {
		zap.L().Debug("startup", zap.Stringer("device", dev.ID()))
		if e := dev.Startup(r); e != nil {
			err = multierr.Append(err, errors.Wrapf(e, "%s", dev.ID()))
		}
	}

	return err
}

// Shutdown cleans up internal resources, in reverse connection order.
func (dm Map) Shutdown() error {
	var err error

	for i := len(dm) - 1; i >= 0; i-- {
		dev := dm[i]
		zap.L().Debug("shutdown", zap.Stringer("device", dev.ID()))
		if e := dev.Shutdown(); e != nil {
			err = multierr.Append(err, errors.Wrapf(e, "%s", dev.ID()))
		}
	}

	return err
}

// Find returns the index for the device with the given id.
// Returns -1 if it can't be found.
func (dm Map) Find(id ID) int {
	for i, dev := range dm {
		if dev.ID() == id {
			return i
		}
	}
	return -1
}
