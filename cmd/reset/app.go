package main

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/hexaflex/zxreset/machine"
)

// App defines application context.
type App struct {
	config  *Config          // Resolved command line.
	machine *machine.Machine // Machine to act on.
	out     io.Writer        // Destination for banners.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config, m *machine.Machine, out io.Writer) *App {
	return &App{
		config:  config,
		machine: m,
		out:     out,
	}
}

// Run executes the configured action.
func (a *App) Run() error {
	zap.L().Debug("run", zap.Stringer("action", a.config.Action), zap.Uint8("mode", a.config.Mode))

	switch a.config.Action {
	case ActionHelp:
		a.showHelp()
	case ActionInfo:
		a.showInfo()
	case ActionReset:
		return a.machine.Reset().Trigger(a.config.Mode)
	}

	return nil
}

// showHelp writes the usage banner.
func (a *App) showHelp() {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", AppDescription)
	fmt.Fprintf(&sb, "%s [-H][-S][-r x][-h|-v]\n\n", strings.ToUpper(AppName))

	for _, opt := range options {
		// "-H" + "[ard]" from "--hard".
		label := opt.short + "[" + opt.long[3:] + "]"
		fmt.Fprintf(&sb, " %-12s%s\n", label, opt.usage)
	}

	io.WriteString(a.out, sb.String())
}

// showInfo writes program, firmware and core version information.
func (a *App) showInfo() {
	fw := a.machine.ESX()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", strings.ToUpper(AppName), AppCopyright)
	fmt.Fprintf(&sb, " Version %s (%s)\n", Version(), fw.DOSVersion())
	fmt.Fprintf(&sb, " Version %s (ZX Spectrum Next)\n", fw.CoreVersion())
	fmt.Fprintf(&sb, " %s\n", AppAuthor)

	io.WriteString(a.out, sb.String())
}
