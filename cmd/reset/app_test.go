package main

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/hexaflex/zxreset/devices/zxn/esx"
	"github.com/hexaflex/zxreset/devices/zxn/regs"
	"github.com/hexaflex/zxreset/devices/zxn/reset"
	"github.com/hexaflex/zxreset/machine"
)

func openMachine(t *testing.T, dos esx.Version) *machine.Machine {
	t.Helper()

	s := machine.DefaultSettings()
	s.DOSVersion = dos

	m, err := machine.Open(s)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { m.Close() })
	return m
}

func TestAppHelp(t *testing.T) {
	var out bytes.Buffer
	err := NewApp(&Config{Action: ActionHelp}, openMachine(t, esx.Legacy), &out).Run()
	if err != nil {
		t.Fatal(err)
	}

	want := "Reset the ZX Spectrum Next\n" +
		"\n" +
		"RESET [-H][-S][-r x][-h|-v]\n" +
		"\n" +
		" -H[ard]     hardware reset\n" +
		" -S[oft]     software reset (*)\n" +
		" -r[eset]    special reset \"x\"\n" +
		" -h[elp]     print this help\n" +
		" -v[ersion]  print version info\n"

	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("help mismatch (-want +have):\n%s", diff)
	}
}

func TestAppInfo(t *testing.T) {
	for _, tc := range []struct {
		dos  esx.Version
		want string
	}{
		{esx.Legacy, " Version " + Version() + " (48K mode)\n"},
		{esx.NewVersion(2, 7), " Version " + Version() + " (NextOS 2.07)\n"},
	} {
		var out bytes.Buffer
		err := NewApp(&Config{Action: ActionInfo}, openMachine(t, tc.dos), &out).Run()
		if err != nil {
			t.Fatal(err)
		}

		want := "RESET (c) 2026 hexaflex\n" +
			tc.want +
			" Version 3.01.10 (ZX Spectrum Next)\n" +
			" " + AppAuthor + "\n"

		if diff := cmp.Diff(want, out.String()); diff != "" {
			t.Fatalf("info mismatch (-want +have):\n%s", diff)
		}
	}
}

func TestAppReset(t *testing.T) {
	m := openMachine(t, esx.Legacy)

	err := NewApp(&Config{Action: ActionReset, Mode: 0x42}, m, &bytes.Buffer{}).Run()
	if errors.Cause(err) != reset.ErrNotSupported {
		t.Fatalf("want %v; have %v", reset.ErrNotSupported, err)
	}

	if have := m.Registers().U8(regs.Reset); have != 0x42 {
		t.Fatalf("want reset register 0x42; have %#x", have)
	}
}

func TestAppNone(t *testing.T) {
	m := openMachine(t, esx.Legacy)

	var out bytes.Buffer
	if err := NewApp(&Config{Action: ActionNone}, m, &out).Run(); err != nil {
		t.Fatal(err)
	}
	if out.Len() > 0 || m.Registers().U8(regs.Reset) != 0 {
		t.Fatalf("expected no output and no register writes")
	}
}
