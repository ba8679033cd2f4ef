package errors

import (
	"strings"
	"unicode"
)

// MaxOperandDigits is the longest numerator or denominator the layouts support.
const MaxOperandDigits = 2

// ValidateDigits validates a numerator or denominator operand.
//
// The validation rules are:
//   - No empty operands
//   - Only ASCII digits 0-9
//   - At most MaxOperandDigits digits
func ValidateDigits(role, s string) error {
	if s == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", role)
	}

	if len(s) > MaxOperandDigits {
		return New(ErrCodeInvalidInput, "%s %q too long (max %d digits)", role, s, MaxOperandDigits)
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return New(ErrCodeInvalidInput, "%s %q must contain only digits", role, s)
		}
	}

	return nil
}

// ValidateDir validates a directory path given on the command line or in a job file.
// It only rejects paths that can never be valid; existence is checked by the caller.
func ValidateDir(role, path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "%s directory cannot be empty", role)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "%s directory contains invalid characters", role)
		}
	}

	return nil
}
