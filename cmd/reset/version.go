package main

import (
	"fmt"
	"runtime/debug"
)

// Various version related constants.
const (
	AppVendor      = "hexaflex"
	AppName        = "reset"
	AppVersion     = "v1.0.0"
	AppDescription = "Reset the ZX Spectrum Next"
	AppCopyright   = "(c) 2026 hexaflex"
	AppAuthor      = "hexaflex (github.com/hexaflex/zxreset)"
)

// Version returns the program version, preferring the module version
// recorded at build time.
func Version() string {
	version := AppVersion
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	return version
}

// FullVersion returns program version information.
func FullVersion() string {
	return fmt.Sprintf("%s %s %s", AppVendor, AppName, Version())
}
