package render

import (
	"image/color"
	"strconv"
	"strings"
)

// namedColors maps the brush color names the UI offers to RGBA values.
var namedColors = map[string]color.RGBA{
	"red":     {R: 255, G: 59, B: 48, A: 255},
	"orange":  {R: 255, G: 149, B: 0, A: 255},
	"yellow":  {R: 255, G: 204, B: 0, A: 255},
	"green":   {R: 52, G: 199, B: 89, A: 255},
	"blue":    {R: 0, G: 122, B: 255, A: 255},
	"purple":  {R: 175, G: 82, B: 222, A: 255},
	"black":   {R: 0, G: 0, B: 0, A: 255},
	"white":   {R: 255, G: 255, B: 255, A: 255},
	"magenta": {R: 255, G: 0, B: 255, A: 255},
	"cyan":    {R: 0, G: 255, B: 255, A: 255},
}

// defaultBrush is used when a color string cannot be parsed; drawing must
// degrade, never fail, on a bad style value.
var defaultBrush = namedColors["red"]

// ParseColor converts a brush color string to RGBA. It accepts "#RRGGBB"
// hex and a small set of named colors; anything else falls back to the
// default brush color.
func ParseColor(s string) color.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))

	if c, ok := namedColors[s]; ok {
		return c
	}

	if strings.HasPrefix(s, "#") && len(s) == 7 {
		r, errR := strconv.ParseUint(s[1:3], 16, 8)
		g, errG := strconv.ParseUint(s[3:5], 16, 8)
		b, errB := strconv.ParseUint(s[5:7], 16, 8)
		if errR == nil && errG == nil && errB == nil {
			return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
		}
	}

	return defaultBrush
}
