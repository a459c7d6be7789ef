package assdraw

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
)

// Color is an 8-bit RGB color. Alpha travels separately, in ASS's inverted
// convention (0 = opaque, 255 = fully transparent).
type Color struct {
	R, G, B uint8
}

// White is the default texture fallback color.
var White = Color{R: 255, G: 255, B: 255}

// NRGBA converts the color plus an ASS alpha to the standard library's
// non-premultiplied form. The ASS alpha is inverted on the way out.
func (c Color) NRGBA(assAlpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255 - assAlpha}
}

// ASS formats the color in the packed ASS form "&HBBGGRR&".
func (c Color) ASS() string {
	return fmt.Sprintf("&H%02X%02X%02X&", c.B, c.G, c.R)
}

// Hex formats the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Multiply returns the per-channel product of two colors, scaled to the
// 8-bit range. Used by multiply-blend texturing.
func (c Color) Multiply(other Color) Color {
	return Color{
		R: uint8(int(c.R) * int(other.R) / 255),
		G: uint8(int(c.G) * int(other.G) / 255),
		B: uint8(int(c.B) * int(other.B) / 255),
	}
}

var (
	assColorRe      = regexp.MustCompile(`^&H([0-9A-Fa-f]{2})([0-9A-Fa-f]{2})([0-9A-Fa-f]{2})&$`)
	assStyleColorRe = regexp.MustCompile(`^&H([0-9A-Fa-f]{2})([0-9A-Fa-f]{2})([0-9A-Fa-f]{2})([0-9A-Fa-f]{2})$`)
	assAlphaRe      = regexp.MustCompile(`^&H([0-9A-Fa-f]{2})&$`)
	hexColorRe      = regexp.MustCompile(`^#([0-9A-Fa-f]{2})([0-9A-Fa-f]{2})([0-9A-Fa-f]{2})([0-9A-Fa-f]{2})?$`)
)

// ParseASSColor parses the packed ASS form "&HBBGGRR&".
func ParseASSColor(s string) (Color, error) {
	m := assColorRe.FindStringSubmatch(s)
	if m == nil {
		return Color{}, invalidf("assdraw: color: %q is not an ASS color", s)
	}
	return Color{B: hexByte(m[1]), G: hexByte(m[2]), R: hexByte(m[3])}, nil
}

// ParseASSStyleColor parses the style-field form "&HAABBGGRR", returning
// the color and the ASS alpha.
func ParseASSStyleColor(s string) (Color, uint8, error) {
	m := assStyleColorRe.FindStringSubmatch(s)
	if m == nil {
		return Color{}, 0, invalidf("assdraw: color: %q is not an ASS style color", s)
	}
	return Color{B: hexByte(m[2]), G: hexByte(m[3]), R: hexByte(m[4])}, hexByte(m[1]), nil
}

// FormatASSStyleColor renders a color plus ASS alpha in the style-field
// form "&HAABBGGRR".
func FormatASSStyleColor(c Color, assAlpha uint8) string {
	return fmt.Sprintf("&H%02X%02X%02X%02X", assAlpha, c.B, c.G, c.R)
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA". The returned alpha is in
// ASS convention (inverted from the hex digits); plain "#RRGGBB" is opaque
// (ASS alpha 0).
func ParseHexColor(s string) (Color, uint8, error) {
	m := hexColorRe.FindStringSubmatch(s)
	if m == nil {
		return Color{}, 0, invalidf("assdraw: color: %q is not a hex color", s)
	}
	c := Color{R: hexByte(m[1]), G: hexByte(m[2]), B: hexByte(m[3])}
	alpha := uint8(0)
	if m[4] != "" {
		alpha = 255 - hexByte(m[4])
	}
	return c, alpha, nil
}

// AlphaFromASS parses the ASS alpha form "&HAA&".
func AlphaFromASS(s string) (uint8, error) {
	m := assAlphaRe.FindStringSubmatch(s)
	if m == nil {
		return 0, invalidf("assdraw: alpha: %q is not an ASS alpha", s)
	}
	return hexByte(m[1]), nil
}

// AlphaToASS formats an alpha value in the ASS form "&HAA&".
func AlphaToASS(a uint8) string {
	return fmt.Sprintf("&H%02X&", a)
}

// hexByte parses a two-digit hex string that has already been validated.
func hexByte(s string) uint8 {
	var v uint8
	for i := 0; i < 2; i++ {
		v <<= 4
		switch {
		case s[i] >= '0' && s[i] <= '9':
			v |= s[i] - '0'
		case s[i] >= 'a' && s[i] <= 'f':
			v |= s[i] - 'a' + 10
		case s[i] >= 'A' && s[i] <= 'F':
			v |= s[i] - 'A' + 10
		}
	}
	return v
}

// ColorFromHSV converts hue (degrees, [0,360)), saturation and value
// (both [0,1]) to a Color.
func ColorFromHSV(h, s, v float64) Color {
	h = math.Mod(math.Mod(h, 360)+360, 360) / 60
	i := int(h)
	f := h - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch i {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return Color{
		R: uint8(math.Round(r * 255)),
		G: uint8(math.Round(g * 255)),
		B: uint8(math.Round(b * 255)),
	}
}

// HSV returns the color's hue (degrees), saturation and value.
func (c Color) HSV() (h, s, v float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v = max
	d := max - min
	if max > 0 {
		s = d / max
	}
	if d == 0 {
		return 0, s, v
	}
	switch max {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, v
}
