package colorutil

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBToHSL converts 0-255 channels to hue, saturation and lightness in [0,1].
// Achromatic input (max == min) yields h = s = 0.
func RGBToHSL(r, g, b int) (h, s, l float64) {
	c := colorful.Color{
		R: float64(clampInt(r)) / 255,
		G: float64(clampInt(g)) / 255,
		B: float64(clampInt(b)) / 255,
	}
	hDeg, s, l := c.Hsl()
	if s == 0 {
		return 0, 0, l
	}
	h = hDeg / 360
	if h >= 1 {
		h -= 1
	}
	return h, s, l
}

// HSLToRGB converts hue, saturation and lightness in [0,1] back to rounded
// 0-255 channels.
func HSLToRGB(h, s, l float64) (r, g, b int) {
	c := colorful.Hsl(clamp01(h)*360, clamp01(s), clamp01(l))
	return roundChannel(c.R), roundChannel(c.G), roundChannel(c.B)
}

func roundChannel(v float64) int {
	return int(clampChannel(math.Round(v * 255)))
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
