package colorutil

// Lighten raises lightness by percent/100 (clamped to 1) and drops alpha.
func (c Color) Lighten(percent float64) Color {
	return c.shiftLightness(percent / 100)
}

// Darken lowers lightness by percent/100 (clamped to 0) and drops alpha.
func (c Color) Darken(percent float64) Color {
	return c.shiftLightness(-percent / 100)
}

func (c Color) shiftLightness(delta float64) Color {
	h, s, l := RGBToHSL(int(c.R), int(c.G), int(c.B))
	r, g, b := HSLToRGB(h, s, clamp01(l+delta))
	return Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 1}
}

// Lighten 文本版本：解析失败时原样返回输入
//
// 输出总是不透明的 "rgb(r, g, b)"（alpha 被丢弃）。
func Lighten(color string, percent float64) string {
	c, err := Parse(color)
	if err != nil {
		return color
	}
	return c.Lighten(percent).RGBString()
}

// Darken 文本版本：解析失败时原样返回输入
func Darken(color string, percent float64) string {
	c, err := Parse(color)
	if err != nil {
		return color
	}
	return c.Darken(percent).RGBString()
}

// SetAlpha replaces the alpha of a textual color, preserving r/g/b.
// Malformed input is returned unchanged.
func SetAlpha(color string, alpha float64) string {
	c, err := Parse(color)
	if err != nil {
		return color
	}
	return c.WithAlpha(alpha).String()
}
