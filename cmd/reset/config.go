package main

import (
	"strings"

	"github.com/hexaflex/zxreset/devices/zxn/reset"
)

// Action selects what the program does once arguments are parsed.
type Action int

// Known actions.
const (
	ActionNone Action = iota
	ActionHelp
	ActionInfo
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionHelp:
		return "help"
	case ActionInfo:
		return "info"
	case ActionReset:
		return "reset"
	}
	return "unknown"
}

// DefaultMode is the reset mode used when no mode option is given.
const DefaultMode = reset.ModeSoft

// Config defines program configuration.
type Config struct {
	Action Action // Action to run.
	Mode   uint8  // Value written to the reset register. Only used by ActionReset.
}

// option describes a single command line option.
type option struct {
	short string                      // Exact short form, e.g. "-H".
	long  string                      // Long form, matched case-insensitively.
	value bool                        // Does the option consume the next token?
	usage string                      // Help text.
	apply func(c *Config, arg string) // Applies the option to c.
}

// options lists all known options in the order they are documented.
var options = []option{
	{"-H", "--hard", false, "hardware reset", func(c *Config, _ string) { c.Mode = reset.ModeHard }},
	{"-S", "--soft", false, "software reset (*)", func(c *Config, _ string) { c.Mode = reset.ModeSoft }},
	{"-r", "--reset", true, "special reset \"x\"", func(c *Config, v string) { c.Mode = parseMode(v) }},
	{"-h", "--help", false, "print this help", func(c *Config, _ string) { c.Action = ActionHelp }},
	{"-v", "--version", false, "print version info", func(c *Config, _ string) { c.Action = ActionInfo }},
}

// match reports whether tok names this option.
func (o *option) match(tok string) bool {
	return tok == o.short || strings.EqualFold(tok, o.long)
}

// parseArgs parses command line arguments, excluding the program name.
//
// Tokens are processed left to right and the first error ends the scan.
// Mode options only change the mode; if neither help nor version was
// requested, the action is a reset.
func parseArgs(args []string) (*Config, error) {
	c := Config{
		Action: ActionNone,
		Mode:   DefaultMode,
	}

	for i := 0; i < len(args); i++ {
		tok := args[i]

		if !strings.HasPrefix(tok, "-") {
			return nil, NewError(UnexpectedArgument, tok)
		}

		opt := findOption(tok)
		if opt == nil {
			return nil, NewError(InvalidOption, tok)
		}

		var arg string
		if opt.value {
			if i+1 >= len(args) {
				return nil, NewError(MissingValue, tok)
			}
			i++
			arg = args[i]
		}

		opt.apply(&c, arg)
	}

	if c.Action == ActionNone {
		c.Action = ActionReset
	}

	return &c, nil
}

// findOption returns the option named by tok, or nil.
func findOption(tok string) *option {
	for i := range options {
		if options[i].match(tok) {
			return &options[i]
		}
	}
	return nil
}
