package glyph

import (
	"strconv"

	errs "github.com/matzehuels/fractiongen/pkg/errors"
	"github.com/matzehuels/fractiongen/pkg/grid"
)

// Class identifies a glyph pool: a digit 0-9 or the fraction bar.
type Class int

// ClassBar is the pool of bar glyphs.
const ClassBar Class = 10

// Digits lists the digit classes in order.
var Digits = []Class{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

// String returns "0".."9" for digits and "bar" for ClassBar.
func (c Class) String() string {
	if c == ClassBar {
		return "bar"
	}
	return strconv.Itoa(int(c))
}

// IsDigit reports whether c is one of the ten digit classes.
func (c Class) IsDigit() bool {
	return c >= 0 && c <= 9
}

// DigitClass returns the class for an ASCII digit rune.
func DigitClass(r rune) (Class, error) {
	if r < '0' || r > '9' {
		return 0, errs.New(errs.ErrCodeInvalidInput, "%q is not a digit", r)
	}
	return Class(r - '0'), nil
}

// ParseDigits maps a digit string such as "92" to its classes.
func ParseDigits(s string) ([]Class, error) {
	out := make([]Class, 0, len(s))
	for _, r := range s {
		c, err := DigitClass(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Glyph is a grid tagged with its class and source file.
type Glyph struct {
	Class Class
	Path  string
	Grid  *grid.Grid
}
