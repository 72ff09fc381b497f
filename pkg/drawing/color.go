package drawing

import (
	"fmt"
	"strconv"
	"strings"

	"faceplate/pkg/errors"
)

// RGB is a 24-bit true color.
type RGB struct {
	R, G, B uint8
}

// TrueColor packs the color into the DXF 24-bit true color integer.
func (c RGB) TrueColor() int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

// Hex renders the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseColor accepts "#RRGGBB" or "r,g,b" with decimal components 0-255.
func ParseColor(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, errors.New(errors.ErrCodeInvalidColor, "empty color")
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 {
			return RGB{}, errors.New(errors.ErrCodeInvalidColor, "color %q: want #RRGGBB", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return RGB{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "color %q", s)
		}
		return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, errors.New(errors.ErrCodeInvalidColor, "color %q: want #RRGGBB or r,g,b", s)
	}
	var comps [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return RGB{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "color %q", s)
		}
		if v < 0 || v > 255 {
			return RGB{}, errors.New(errors.ErrCodeInvalidColor, "color %q: component %d out of range", s, v)
		}
		comps[i] = uint8(v)
	}
	return RGB{R: comps[0], G: comps[1], B: comps[2]}, nil
}
