package parser

import (
	"image/color"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor understands named colors (the SVG/X11 set) and the hex forms
// #rgb, #rgba, #rrggbb and #rrggbbaa
func ParseColor(spec string) (color.NRGBA, bool) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return color.NRGBA{}, false
	}

	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
	}

	if !strings.HasPrefix(s, "#") || !isHex(s[1:]) {
		return color.NRGBA{}, false
	}

	digits := s[1:]
	alpha := "ff"
	switch len(digits) {
	case 3, 6:
	case 4:
		alpha = strings.Repeat(digits[3:], 2)
		digits = digits[:3]
	case 8:
		alpha = digits[6:]
		digits = digits[:6]
	default:
		return color.NRGBA{}, false
	}

	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return color.NRGBA{}, false
	}
	a, err := strconv.ParseUint(alpha, 16, 8)
	if err != nil {
		return color.NRGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, true
}

// ColorHex renders a color spec as #rrggbb, falling back to fallback when unparsable
func ColorHex(spec, fallback string) string {
	c, ok := ParseColor(spec)
	if !ok {
		return fallback
	}
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
