package stepmark

import (
	"fmt"
	"image/color"
)

// Color is an opaque annotation color. Annotations never carry their own
// alpha: translucency (the highlight fill) is a property of the renderer.
type Color struct {
	R, G, B uint8
}

// RGB creates a Color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseHex parses "#rgb" or "#rrggbb" (the leading '#' is optional).
func ParseHex(hex string) (Color, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	switch len(s) {
	case 3:
		if !parseHex(s[0:1], &r) || !parseHex(s[1:2], &g) || !parseHex(s[2:3], &b) {
			return Color{}, fmt.Errorf("stepmark: invalid color %q", hex)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if !parseHex(s[0:2], &r) || !parseHex(s[2:4], &g) || !parseHex(s[4:6], &b) {
			return Color{}, fmt.Errorf("stepmark: invalid color %q", hex)
		}
	default:
		return Color{}, fmt.Errorf("stepmark: invalid color %q", hex)
	}
	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// MustHex is like ParseHex but panics on malformed input. It is intended for
// package-level palette literals.
func MustHex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// parseHex accumulates hex digits into val and reports whether all were valid.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// RGBA converts the color to an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// MarshalText encodes the color as "#rrggbb".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes "#rgb" or "#rrggbb".
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Swatch colors offered by the recorder toolbar. Red is the default pen.
var (
	Red    = MustHex("#e74c3c")
	Orange = MustHex("#e67e22")
	Yellow = MustHex("#f1c40f")
	Green  = MustHex("#2ecc71")
	Blue   = MustHex("#3d8ef0")
	White  = MustHex("#ffffff")
	Black  = MustHex("#111111")
)

// Palette lists the swatches in toolbar order.
var Palette = []Color{Red, Orange, Yellow, Green, Blue, White, Black}

// PenSizes lists the freehand widths offered by the toolbar (S, M, L, XL).
var PenSizes = []int{2, 5, 10, 18}

// Fixed render colors.
var (
	redactFill    = RGB(16, 16, 16)
	redactOutline = RGB(70, 70, 70)
)
