// Package machine assembles the register file and the devices of a
// ZX Spectrum Next into a single handle.
package machine

import (
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hexaflex/zxreset/devices"
	"github.com/hexaflex/zxreset/devices/zxn/clock"
	"github.com/hexaflex/zxreset/devices/zxn/esx"
	"github.com/hexaflex/zxreset/devices/zxn/regs"
	"github.com/hexaflex/zxreset/devices/zxn/reset"
)

// Register file backends.
const (
	Emulated = "emulated" // In-memory register bank.
	MMap     = "mmap"     // Register window mapped from a file.
)

// Settings defines how to reach the machine.
type Settings struct {
	Backend        string      // Emulated or MMap.
	RegisterFile   string      // File mapped by the MMap backend.
	RegisterOffset int64       // Offset of register 0x00 in RegisterFile.
	BoostSpeed     clock.Speed // Speed used while the program runs.
	DOSVersion     esx.Version // Host OS reported by the Emulated backend.
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Backend:      Emulated,
		RegisterFile: "/dev/zxnext-regs",
		BoostSpeed:   clock.Speed28M,
		DOSVersion:   esx.Legacy,
	}
}

// Machine defines a running machine and its peripherals.
type Machine struct {
	regs    devices.Registers // Register file, as seen by the devices.
	closer  io.Closer         // Releases the backend; nil for the emulated bank.
	devices devices.Map       // Connected peripherals.
	clock   *clock.Device
	reset   *reset.Device
	esx     *esx.Device
	boost   clock.Speed
}

// Open connects to the machine described by s and starts its devices.
func Open(s Settings) (*Machine, error) {
	var m Machine
	m.boost = s.BoostSpeed
	m.clock = clock.New()
	m.reset = reset.New()
	m.esx = esx.New(s.DOSVersion)

	switch s.Backend {
	case Emulated, "":
		m.regs = regs.NewBank()
	case MMap:
		w, err := regs.OpenWindow(s.RegisterFile, s.RegisterOffset)
		if err != nil {
			return nil, err
		}
		m.regs = w
		m.closer = w
	default:
		return nil, errors.Errorf("unknown backend %q", s.Backend)
	}

	zap.L().Debug("machine open", zap.String("backend", s.Backend))

	m.devices.Connect(m.clock)
	m.devices.Connect(m.reset)
	m.devices.Connect(m.esx)

	if err := m.devices.Startup(traced(m.regs)); err != nil {
		return nil, multierr.Append(err, m.Close())
	}

	return &m, nil
}

// Close shuts down all devices and releases the register file.
// It is safe to call Close more than once.
func (m *Machine) Close() error {
	if m.regs == nil {
		return nil
	}

	err := m.devices.Shutdown()
	if m.closer != nil {
		err = multierr.Append(err, m.closer.Close())
	}

	m.regs = nil
	m.closer = nil
	return err
}

// Registers returns the raw register file.
func (m *Machine) Registers() devices.Registers { return m.regs }

// Clock returns the CPU clock controller.
func (m *Machine) Clock() *clock.Device { return m.clock }

// Reset returns the reset controller.
func (m *Machine) Reset() *reset.Device { return m.reset }

// ESX returns the firmware information device.
func (m *Machine) ESX() *esx.Device { return m.esx }

// Boost saves the current CPU speed and switches to the configured boost
// speed. The returned restore function puts the saved speed back; it may
// be called any number of times and is never nil.
func (m *Machine) Boost() (restore func(), err error) {
	if m.regs == nil {
		return func() {}, errors.New("machine is closed")
	}

	saved := m.clock.Speed()
	zap.L().Debug("cpu speed boost", zap.Stringer("saved", saved), zap.Stringer("speed", m.boost))
	m.clock.SetSpeed(m.boost)

	var once sync.Once
	return func() {
		once.Do(func() {
			if m.regs == nil {
				zap.L().Warn("cpu speed not restored: machine is closed")
				return
			}
			zap.L().Debug("cpu speed restore", zap.Stringer("speed", saved))
			m.clock.SetSpeed(saved)
		})
	}, nil
}

// traced logs every register write at debug level.
func traced(r devices.Registers) devices.Registers {
	return devices.RegistersFunc{
		Get: r.U8,
		Set: func(reg int, value byte) {
			zap.L().Debug("nextreg write",
				zap.String("reg", fmt.Sprintf("0x%02x", reg)),
				zap.String("value", fmt.Sprintf("0x%02x", value)))
			r.SetU8(reg, value)
		},
	}
}
