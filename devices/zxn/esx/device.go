// Package esx reports the firmware the program runs under: the host
// operating system version and the FPGA core version.
package esx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/zxreset/devices"
	"github.com/hexaflex/zxreset/devices/zxn/regs"
)

// Version is an operating system version as reported by M_DOSVERSION.
// The upper byte holds the NextOS major version, the lower byte the minor.
type Version uint16

// Legacy is reported when NextOS runs in 48K compatibility mode.
const Legacy Version = 0

// NewVersion creates a NextOS version with the given components.
func NewVersion(major, minor int) Version {
	return Version(major&0xff)<<8 | Version(minor&0xff)
}

func (v Version) Major() int { return int(v>>8) & 0xff }
func (v Version) Minor() int { return int(v) & 0xff }

func (v Version) String() string {
	if v == Legacy {
		return "48K mode"
	}
	return fmt.Sprintf("NextOS %d.%02d", v.Major(), v.Minor())
}

// ParseVersion parses "48k" or a "major.minor" NextOS version.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "48k") {
		return Legacy, nil
	}

	major, minor, ok := strings.Cut(s, ".")
	if !ok {
		return 0, errors.Errorf("invalid dos version %q", s)
	}

	a, err := strconv.ParseUint(major, 10, 8)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid dos version %q", s)
	}

	b, err := strconv.ParseUint(minor, 10, 8)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid dos version %q", s)
	}

	v := NewVersion(int(a), int(b))
	if v == Legacy {
		return 0, errors.Errorf("invalid dos version %q", s)
	}
	return v, nil
}

// Device answers firmware queries.
type Device struct {
	regs devices.Registers
	dos  Version
}

var _ devices.Device = &Device{}

// New creates a device which reports dos as the host operating system.
func New(dos Version) *Device {
	return &Device{dos: dos}
}

func (d *Device) ID() devices.ID {
	return devices.NewID(devices.ZXN, 0x0088)
}

func (d *Device) Startup(r devices.Registers) error {
	d.regs = r
	return nil
}

func (d *Device) Shutdown() error {
	d.regs = nil
	return nil
}

// DOSVersion returns the host operating system version.
func (d *Device) DOSVersion() Version {
	return d.dos
}

// CoreVersion returns the FPGA core version as major.minor.subminor.
func (d *Device) CoreVersion() string {
	v := d.regs.U8(regs.CoreVersion)
	sub := d.regs.U8(regs.CoreVersionSubMinor)
	return fmt.Sprintf("%d.%02d.%02d", v>>4, v&0x0f, sub)
}
