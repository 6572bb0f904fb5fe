package main

import (
	"math"
	"strings"
)

// parseMode parses a reset mode the way strtoul(3) does with base 0 and
// truncates the result to 8 bits. It never fails: input without digits
// yields 0, overflow saturates before truncation.
func parseMode(v string) uint8 {
	v = strings.TrimLeft(v, " \t\n\v\f\r")

	neg := false
	if len(v) > 0 && (v[0] == '+' || v[0] == '-') {
		neg = v[0] == '-'
		v = v[1:]
	}

	base, digits := splitNumber(v)

	var n uint64
	overflow := false

	for i := 0; i < len(digits); i++ {
		d := digitValue(digits[i])
		if d >= base {
			break
		}

		if n > (math.MaxUint64-uint64(d))/uint64(base) {
			overflow = true
			continue
		}

		n = n*uint64(base) + uint64(d)
	}

	if overflow {
		return math.MaxUint8
	}

	if neg {
		n = -n
	}

	return uint8(n)
}

// splitNumber splits v into its base and the digits that follow the base
// prefix. "0x" selects base 16 and a leading zero base 8, provided a digit
// of that base follows. Everything else is base 10.
func splitNumber(v string) (int, string) {
	if len(v) > 2 && v[0] == '0' && (v[1] == 'x' || v[1] == 'X') && digitValue(v[2]) < 16 {
		return 16, v[2:]
	}

	if len(v) > 1 && v[0] == '0' {
		return 8, v[1:]
	}

	return 10, v
}

// digitValue returns the numeric value of c as a digit in bases up to 36,
// or 36 if c is not a digit.
func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}
