package color

import (
	"fmt"
	"strconv"
)

// ParseHex parses a "#rrggbb" or shorthand "#rgb" hex color string into an
// RGB value.
func ParseHex(s string) (RGB, error) {
	if len(s) == 0 || s[0] != '#' {
		return RGB{}, fmt.Errorf("not a hex color: %q", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		r, err1 := strconv.ParseUint(hex[0:1], 16, 8)
		g, err2 := strconv.ParseUint(hex[1:2], 16, 8)
		b, err3 := strconv.ParseUint(hex[2:3], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return RGB{}, fmt.Errorf("not a hex color: %q", s)
		}
		return RGB{R: uint8(r) * 17, G: uint8(g) * 17, B: uint8(b) * 17}, nil
	case 6:
		r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
		g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
		b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return RGB{}, fmt.Errorf("not a hex color: %q", s)
		}
		return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
	default:
		return RGB{}, fmt.Errorf("not a hex color: %q", s)
	}
}
