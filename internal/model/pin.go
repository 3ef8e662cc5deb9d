// Package model defines the data structures for switch topology analysis.
package model

import (
	"fmt"
	"strings"
)

// Path represents a file system path.
type Path string

// Pin is the canonical name of an electrical contact point. Two pins are
// the same contact iff their names are equal. A pin is either a surface pin
// ("A7": designator + 1-based index) or a free pin, an explicit external
// name such as "GND", "TIP" or "P1+".
type Pin string

// SurfacePin builds the canonical name for pin index on the given surface.
func SurfacePin(designator string, index int) Pin {
	return Pin(fmt.Sprintf("%s%d", strings.ToUpper(designator), index))
}

// FreePin builds a canonical free pin from an explicit external name.
// Names are upper-cased so "gnd" and "GND" identify the same contact.
func FreePin(name string) Pin {
	return Pin(strings.ToUpper(strings.TrimSpace(name)))
}

// Designator returns the surface letter and index for a surface-shaped pin
// name, or ok=false for free pins.
func (p Pin) Designator() (designator string, index int, ok bool) {
	s := string(p)
	if len(s) < 2 {
		return "", 0, false
	}

	head := s[0]
	if head < 'A' || head > 'Z' {
		return "", 0, false
	}

	n := 0
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return "", 0, false
		}

		n = n*10 + int(r-'0')
	}

	return s[:1], n, true
}

func (p Pin) String() string {
	return string(p)
}
