package machine_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/hexaflex/zxreset/devices/zxn/clock"
	"github.com/hexaflex/zxreset/devices/zxn/esx"
	"github.com/hexaflex/zxreset/devices/zxn/regs"
	"github.com/hexaflex/zxreset/devices/zxn/reset"
	"github.com/hexaflex/zxreset/machine"
)

var _ = Describe("Machine", func() {
	var (
		settings machine.Settings
		m        *machine.Machine
	)

	BeforeEach(func() {
		settings = machine.DefaultSettings()
	})

	AfterEach(func() {
		if m != nil {
			Expect(m.Close()).To(Succeed())
			m = nil
		}
	})

	open := func() {
		var err error
		m, err = machine.Open(settings)
		Expect(err).NotTo(HaveOccurred())
	}

	Describe("emulated backend", func() {
		BeforeEach(open)

		It("starts at power-on values", func() {
			Expect(m.Registers().U8(regs.MachineID)).To(Equal(byte(regs.DefaultMachineID)))
			Expect(m.Clock().Speed()).To(Equal(clock.Speed3M5))
			Expect(m.ESX().DOSVersion()).To(Equal(esx.Legacy))
			Expect(m.ESX().CoreVersion()).To(Equal("3.01.10"))
		})

		It("writes the reset register and reports that it returned", func() {
			err := m.Reset().Trigger(reset.ModeHard)
			Expect(errors.Cause(err)).To(Equal(reset.ErrNotSupported))
			Expect(m.Registers().U8(regs.Reset)).To(Equal(byte(reset.ModeHard)))
		})

		It("can be closed more than once", func() {
			Expect(m.Close()).To(Succeed())
			Expect(m.Close()).To(Succeed())
		})
	})

	Describe("Boost", func() {
		BeforeEach(func() {
			settings.BoostSpeed = clock.Speed28M
			open()
		})

		It("runs at the boost speed until restored", func() {
			m.Clock().SetSpeed(clock.Speed7M)

			restore, err := m.Boost()
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Clock().Speed()).To(Equal(clock.Speed28M))

			restore()
			Expect(m.Clock().Speed()).To(Equal(clock.Speed7M))
		})

		It("restores only once", func() {
			restore, err := m.Boost()
			Expect(err).NotTo(HaveOccurred())

			restore()
			m.Clock().SetSpeed(clock.Speed14M)
			restore()
			Expect(m.Clock().Speed()).To(Equal(clock.Speed14M))
		})

		It("restores on every return path", func() {
			run := func(fail bool) error {
				restore, err := m.Boost()
				defer restore()
				if err != nil {
					return err
				}
				if fail {
					return errors.New("early return")
				}
				return nil
			}

			for _, speed := range []clock.Speed{clock.Speed3M5, clock.Speed7M, clock.Speed14M} {
				m.Clock().SetSpeed(speed)
				Expect(run(true)).To(HaveOccurred())
				Expect(m.Clock().Speed()).To(Equal(speed))
				Expect(run(false)).To(Succeed())
				Expect(m.Clock().Speed()).To(Equal(speed))
			}
		})

		It("fails on a closed machine", func() {
			Expect(m.Close()).To(Succeed())

			restore, err := m.Boost()
			Expect(err).To(HaveOccurred())
			Expect(restore).NotTo(BeNil())
			restore()
		})
	})

	Describe("mmap backend", func() {
		var file string

		BeforeEach(func() {
			file = filepath.Join(GinkgoT().TempDir(), "regs")
			data := make([]byte, unix.Getpagesize())
			data[regs.CoreVersion] = 0x32
			data[regs.CPUSpeed] = byte(clock.Speed14M)
			Expect(os.WriteFile(file, data, 0600)).To(Succeed())

			settings.Backend = machine.MMap
			settings.RegisterFile = file
			open()
		})

		It("reads and writes the mapped file", func() {
			Expect(m.ESX().CoreVersion()).To(Equal("3.02.00"))

			restore, err := m.Boost()
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Clock().Speed()).To(Equal(clock.Speed28M))
			restore()

			Expect(m.Close()).To(Succeed())
			m = nil

			data, err := os.ReadFile(file)
			Expect(err).NotTo(HaveOccurred())
			Expect(clock.Speed(data[regs.CPUSpeed])).To(Equal(clock.Speed14M))
		})
	})

	Describe("Open", func() {
		It("rejects unknown backends", func() {
			settings.Backend = "tape"
			_, err := machine.Open(settings)
			Expect(err).To(MatchError(ContainSubstring("unknown backend")))
		})

		It("reports missing register files", func() {
			settings.Backend = machine.MMap
			settings.RegisterFile = filepath.Join(GinkgoT().TempDir(), "missing")
			_, err := machine.Open(settings)
			Expect(err).To(HaveOccurred())
		})
	})
})
