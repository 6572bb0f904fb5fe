package regs

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/hexaflex/zxreset/devices"
)

// Window maps the register file exposed by a device node (or any file
// laid out the same way) into memory. Register n lives at byte offset+n.
type Window struct {
	fd   *os.File
	data []byte // Whole mapping, starting at the page boundary below offset.
	mem  []byte // Register view into data.
}

var _ devices.Registers = &Window{}

// OpenWindow maps Count registers of the given file, starting at offset.
// The offset does not need to be page aligned.
func OpenWindow(file string, offset int64) (*Window, error) {
	if offset < 0 {
		return nil, errors.Errorf("invalid register offset %d", offset)
	}

	fd, err := os.OpenFile(file, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, errors.Wrap(err, "open register window")
	}

	// Device nodes report no size; regular files must cover the whole window.
	if fi, err := fd.Stat(); err == nil && fi.Mode().IsRegular() && fi.Size() < offset+Count {
		fd.Close()
		return nil, errors.Errorf("%s: %d bytes is too small for registers at %#x", file, fi.Size(), offset)
	}

	page := int64(unix.Getpagesize())
	base := offset &^ (page - 1)
	delta := int(offset - base)

	data, err := unix.Mmap(int(fd.Fd()), base, delta+Count, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		fd.Close()
		return nil, errors.Wrapf(err, "mmap %s at %#x", file, offset)
	}

	return &Window{
		fd:   fd,
		data: data,
		mem:  data[delta : delta+Count],
	}, nil
}

// U8 returns the value of the given register.
func (w *Window) U8(reg int) byte {
	return w.mem[reg&0xff]
}

// SetU8 writes value to the given register.
func (w *Window) SetU8(reg int, value byte) {
	w.mem[reg&0xff] = value
}

// Close unmaps the window and closes the underlying file.
func (w *Window) Close() error {
	if w.data == nil {
		return nil
	}

	err := unix.Munmap(w.data)
	w.data, w.mem = nil, nil

	if e := w.fd.Close(); err == nil {
		err = e
	}

	return errors.Wrap(err, "close register window")
}
