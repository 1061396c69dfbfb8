package compose

import (
	"fmt"
	"unicode"
	"unicode/utf16"
)

// CharacterSet is the transport alphabet a message needs.
type CharacterSet int

const (
	// Standard covers text made only of code points 0-127.
	Standard CharacterSet = iota
	// Wide is the 16-bit alphabet used for anything else.
	Wide
)

func (c CharacterSet) String() string {
	switch c {
	case Standard:
		return "standard"
	case Wide:
		return "wide"
	}
	return "unknown"
}

// MarshalText encodes the set by name.
func (c CharacterSet) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a set encoded by MarshalText.
func (c *CharacterSet) UnmarshalText(text []byte) error {
	switch string(text) {
	case "standard":
		*c = Standard
	case "wide":
		*c = Wide
	default:
		return fmt.Errorf("unknown character set %q", text)
	}
	return nil
}

// Classify returns Wide if text holds any code point above 127.
//
// This is deliberately stricter than the GSM 03.38 alphabet: accented Latin
// letters such as é or ö count as Wide. Segment counts and quotes may
// therefore be higher than a carrier would bill for those scripts.
func Classify(text string) CharacterSet {
	for _, r := range text {
		if r > unicode.MaxASCII {
			return Wide
		}
	}
	return Standard
}

// Length counts text in UTF-16 code units. For Standard text this equals the
// character count; characters outside the BMP take two units, as they do on
// a UCS-2 transport.
func Length(text string) int {
	n := 0
	for _, r := range text {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
