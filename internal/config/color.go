// color.go provides hex color string parsing for the palette entries in the
// banner config.

package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" into a color.NRGBA.
// The leading "#" is optional. Short forms expand each digit ("#abc" is
// "#aabbcc"); colors without an alpha component are fully opaque.
func ParseHexColor(hex string) (color.NRGBA, error) {
	digits := strings.TrimPrefix(hex, "#")
	switch len(digits) {
	case 3:
		digits = string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		})
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: must be 3, 6 or 8 hex digits", hex)
	}

	var ch [4]uint8
	ch[3] = 0xFF
	for i := 0; i < len(digits)/2; i++ {
		v, err := strconv.ParseUint(digits[2*i:2*i+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// FormatHexColor is the inverse of [ParseHexColor] for opaque colors and
// emits the 8-digit form otherwise.
func FormatHexColor(c color.NRGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
