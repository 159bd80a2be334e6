// Package colorutil provides the color model used by the battle renderer.
//
// Colors cross the boundary with the simulation layer as CSS-like text
// ("rgb(r, g, b)" or "rgba(r, g, b, a)"). They are parsed once into the
// structured Color value and serialized back to text only when a caller
// needs the textual form.
//
// Two error policies coexist on purpose:
//   - Lighten / Darken / SetAlpha return the input unchanged on bad input
//   - GetAlphaFromColor / ChangeAlpha return ErrInvalidColor
package colorutil

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalidColor 颜色字符串不符合 rgb()/rgba() 语法
var ErrInvalidColor = errors.New("invalid rgba color string")

// colorPattern matches rgb(r,g,b) and rgba(r,g,b[,a]) with optional whitespace.
var colorPattern = regexp.MustCompile(`^\s*rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*(\d*\.?\d+)\s*)?\)\s*$`)

// Color is a parsed color: 8-bit channels plus a straight alpha in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Common colors used by the renderer.
var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 1}
	White       = Color{255, 255, 255, 1}
)

// RGB 创建不透明颜色
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA 创建带透明度的颜色，alpha 会被限制在 [0,1]
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: clamp01(a)}
}

// FromColor converts any image/color value (e.g. a colornames entry) and
// overrides its alpha.
func FromColor(c color.Color, alpha float64) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: clamp01(alpha)}
}

// Parse parses "rgb(r, g, b)" or "rgba(r, g, b, a)".
// A missing alpha reads as 1. Channels above 255 or alpha above 1 are rejected.
func Parse(s string) (Color, error) {
	m := colorPattern.FindStringSubmatch(s)
	if m == nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(m[i+1])
		if err != nil || v > 255 {
			return Color{}, fmt.Errorf("%w: channel %q out of range in %q", ErrInvalidColor, m[i+1], s)
		}
		ch[i] = uint8(v)
	}

	alpha := 1.0
	if m[4] != "" {
		a, err := strconv.ParseFloat(m[4], 64)
		if err != nil || a > 1 {
			return Color{}, fmt.Errorf("%w: alpha %q out of range in %q", ErrInvalidColor, m[4], s)
		}
		alpha = a
	}

	return Color{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

// ParseOr parses s and falls back to def when s is malformed.
func ParseOr(s string, def Color) Color {
	c, err := Parse(s)
	if err != nil {
		return def
	}
	return c
}

// String 返回 rgba(r, g, b, a) 文本形式
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatAlpha(c.A))
}

// RGBString 返回不带透明度的 rgb(r, g, b) 文本形式
func (c Color) RGBString() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// NRGBA converts to a non-premultiplied image/color value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(clamp01(c.A) * 255))}
}

// Floats returns straight-alpha channel values in [0,1], the layout
// ebiten vertices expect.
func (c Color) Floats() (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(clamp01(c.A))
}

// WithAlpha replaces the alpha channel and keeps r/g/b.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// MulAlpha scales the alpha channel.
func (c Color) MulAlpha(f float64) Color {
	c.A = clamp01(c.A * f)
	return c
}

// Scale multiplies r/g/b by f (rounded, clamped); alpha is kept.
func (c Color) Scale(f float64) Color {
	return Color{
		R: clampChannel(math.Round(float64(c.R) * f)),
		G: clampChannel(math.Round(float64(c.G) * f)),
		B: clampChannel(math.Round(float64(c.B) * f)),
		A: c.A,
	}
}

// Add offsets each channel and clamps to [0,255]; alpha is kept.
func (c Color) Add(dr, dg, db float64) Color {
	return Color{
		R: clampChannel(math.Round(float64(c.R) + dr)),
		G: clampChannel(math.Round(float64(c.G) + dg)),
		B: clampChannel(math.Round(float64(c.B) + db)),
		A: c.A,
	}
}

// Lerp 在两个颜色之间线性插值（包括透明度）
func Lerp(a, b Color, t float64) Color {
	t = clamp01(t)
	return Color{
		R: clampChannel(math.Round(float64(a.R) + (float64(b.R)-float64(a.R))*t)),
		G: clampChannel(math.Round(float64(a.G) + (float64(b.G)-float64(a.G))*t)),
		B: clampChannel(math.Round(float64(a.B) + (float64(b.B)-float64(a.B))*t)),
		A: a.A + (b.A-a.A)*t,
	}
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	return clamp01(v)
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampChannel(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// formatAlpha mirrors how the simulation layer prints alpha values:
// shortest representation, no trailing zeros.
func formatAlpha(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}
