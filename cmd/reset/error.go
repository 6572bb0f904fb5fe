package main

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/hexaflex/zxreset/devices/zxn/reset"
)

// Kind classifies command line errors.
type Kind int

// Known error kinds.
const (
	InvalidOption Kind = iota + 1
	UnexpectedArgument
	MissingValue
)

// Error defines a command line error for a single token.
type Error struct {
	Kind Kind
	Arg  string // Offending token.
}

// NewError creates a new error of the given kind for token arg.
func NewError(kind Kind, arg string) *Error {
	return &Error{
		Kind: kind,
		Arg:  arg,
	}
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidOption:
		return "unknown option: " + e.Arg
	case UnexpectedArgument:
		return "unexpected argument: " + e.Arg
	case MissingValue:
		return fmt.Sprintf("option %s requires a value", e.Arg)
	}
	return "invalid argument: " + e.Arg
}

// exitCode maps err to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	cause := errors.Cause(err)
	if _, ok := cause.(*Error); ok {
		return int(unix.EINVAL)
	}

	if cause == reset.ErrNotSupported {
		return int(unix.ENOTSUP)
	}

	return int(unix.EIO)
}
