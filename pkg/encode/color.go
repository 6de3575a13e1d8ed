// color.go — Color parsing for design settings.
package encode

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor parses a CSS-style color string into color.NRGBA.
// Accepts "#rgb", "#rrggbb", "#rrggbbaa" and "rgba(r, g, b, a)".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb(") {
		return parseRGBAFunc(s)
	}

	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		// Expand shorthand: "f0c" → "ff00cc".
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected hex or rgba()", s)
	}

	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	if len(hex) == 8 {
		return color.NRGBA{
			R: uint8(v >> 24),
			G: uint8(v >> 16),
			B: uint8(v >> 8),
			A: uint8(v),
		}, nil
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// parseRGBAFunc handles "rgb(r,g,b)" and "rgba(r,g,b,a)" with a as 0–1.
func parseRGBAFunc(s string) (color.NRGBA, error) {
	open := strings.IndexByte(s, '(')
	close := strings.IndexByte(s, ')')
	if open < 0 || close < open {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}

	parts := strings.Split(s[open+1:close], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected 3 or 4 channels", s)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return color.NRGBA{}, fmt.Errorf("invalid channel %q in %q", parts[i], s)
		}
		ch[i] = uint8(v)
	}

	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, fmt.Errorf("invalid alpha %q in %q", parts[3], s)
		}
		alpha = uint8(a*255 + 0.5)
	}

	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

// ParseColorDefault parses a color string, returning fallback on any error.
// Rendering code uses this so a malformed setting degrades instead of failing.
func ParseColorDefault(s string, fallback color.NRGBA) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// WithAlpha returns c with its alpha channel replaced by a (0–1).
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}

// Luma returns the perceived brightness of c on the 0–255 scale,
// using the Rec. 601 weights 0.299R + 0.587G + 0.114B.
func Luma(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
}
