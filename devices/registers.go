package devices

// Registers defines the machine's 8-bit register file.
// Register numbers range from 0x00 to 0xff.
type Registers interface {
	// U8 returns the value of the given register.
	U8(reg int) byte

	// SetU8 writes value to the given register.
	SetU8(reg int, value byte)
}

// RegistersFunc adapts a pair of functions to the Registers interface.
type RegistersFunc struct {
	Get func(reg int) byte
	Set func(reg int, value byte)
}

// U8 returns the value of the given register.
func (r RegistersFunc) U8(reg int) byte { return r.Get(reg) }

// SetU8 writes value to the given register.
func (r RegistersFunc) SetU8(reg int, value byte) { r.Set(reg, value) }
