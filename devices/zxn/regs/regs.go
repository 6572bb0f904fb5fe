// Package regs provides access to the ZX Spectrum Next register file.
package regs

import "github.com/hexaflex/zxreset/devices"

// Count is the number of addressable Next registers.
const Count = 0x100

// Known Next registers.
const (
	MachineID           = 0x00 // Machine id.
	CoreVersion         = 0x01 // Core version: major in the upper nibble, minor in the lower.
	Reset               = 0x02 // Reset control.
	MachineType         = 0x03 // Machine type and timing.
	CPUSpeed            = 0x07 // CPU speed: bits 1:0 select the clock.
	CoreVersionSubMinor = 0x0e // Core version sub-minor number.
)

// Power-on values of the emulated register bank.
const (
	DefaultMachineID           = 0x0a // ZX Spectrum Next.
	DefaultCoreVersion         = 0x31 // 3.01
	DefaultCoreVersionSubMinor = 0x0a // .10
)

// Bank is an emulated register file held in memory.
type Bank struct {
	mem [Count]byte
}

var _ devices.Registers = &Bank{}

// NewBank creates a register bank holding power-on values.
func NewBank() *Bank {
	var b Bank
	b.mem[MachineID] = DefaultMachineID
	b.mem[CoreVersion] = DefaultCoreVersion
	b.mem[CoreVersionSubMinor] = DefaultCoreVersionSubMinor
	return &b
}

// U8 returns the value of the given register.
func (b *Bank) U8(reg int) byte {
	return b.mem[reg&0xff]
}

// SetU8 writes value to the given register.
func (b *Bank) SetU8(reg int, value byte) {
	b.mem[reg&0xff] = value
}
