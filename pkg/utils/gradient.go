package utils

import (
	"math"
	"sort"

	"github.com/gonewx/battlefx/internal/colorutil"
)

// GradientStop 渐变色标
type GradientStop struct {
	Offset float64 // [0,1]
	Color  colorutil.Color
}

// RadialGradient 双圆径向渐变
//
// 语义与 2D 画布的 createRadialGradient 相同：起始圆 (X0,Y0,R0) 到结束圆
// (X1,Y1,R1) 之间插值，超出 [0,1] 的部分延展端点颜色。
// 色标之间在预乘 alpha 空间插值，淡出到透明时不会发灰。
type RadialGradient struct {
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	Stops      []GradientStop
}

// NewRadialGradient 创建径向渐变，色标按 Offset 排序
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64, stops ...GradientStop) *RadialGradient {
	sorted := make([]GradientStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	return &RadialGradient{X0: x0, Y0: y0, R0: r0, X1: x1, Y1: y1, R1: r1, Stops: sorted}
}

// NewConcentricGradient 创建同心径向渐变（内半径 inner 到外半径 outer）
func NewConcentricGradient(x, y, inner, outer float64, stops ...GradientStop) *RadialGradient {
	return NewRadialGradient(x, y, inner, x, y, outer, stops...)
}

// T 求点 (x,y) 的渐变参数
//
// 解 |p - c(t)| = r(t)，其中 c(t) = c0 + t(c1-c0)，r(t) = r0 + t(r1-r0)，
// 取满足 r(t) >= 0 的最大根。无解时 ok 为 false（该点不被渐变覆盖）。
func (g *RadialGradient) T(x, y float64) (t float64, ok bool) {
	qx, qy := x-g.X0, y-g.Y0
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	dr := g.R1 - g.R0

	a := dx*dx + dy*dy - dr*dr
	b := -2 * (qx*dx + qy*dy + g.R0*dr)
	c := qx*qx + qy*qy - g.R0*g.R0

	valid := func(t float64) bool { return g.R0+t*dr >= -1e-9 }

	if math.Abs(a) < 1e-9 {
		if math.Abs(b) < 1e-12 {
			return 0, false
		}
		t = -c / b
		return t, valid(t)
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		// 切点附近的舍入误差
		if disc < -1e-9*(b*b+1) {
			return 0, false
		}
		disc = 0
	}
	sq := math.Sqrt(disc)
	t1 := (-b + sq) / (2 * a)
	t2 := (-b - sq) / (2 * a)
	if t1 < t2 {
		t1, t2 = t2, t1
	}
	if valid(t1) {
		return t1, true
	}
	if valid(t2) {
		return t2, true
	}
	return 0, false
}

// ColorAt 返回点 (x,y) 处的颜色
func (g *RadialGradient) ColorAt(x, y float64) colorutil.Color {
	t, ok := g.T(x, y)
	if !ok {
		return colorutil.Transparent
	}
	return g.ColorAtOffset(t)
}

// ColorAtOffset 返回渐变参数 t 处的颜色（t 限制在 [0,1]）
func (g *RadialGradient) ColorAtOffset(t float64) colorutil.Color {
	n := len(g.Stops)
	if n == 0 {
		return colorutil.Transparent
	}
	t = colorutil.Clamp01(t)
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	if t >= g.Stops[n-1].Offset {
		return g.Stops[n-1].Color
	}
	for i := 1; i < n; i++ {
		s0, s1 := g.Stops[i-1], g.Stops[i]
		if t > s1.Offset {
			continue
		}
		span := s1.Offset - s0.Offset
		if span <= 0 {
			return s1.Color
		}
		return lerpPremultiplied(s0.Color, s1.Color, (t-s0.Offset)/span)
	}
	return g.Stops[n-1].Color
}

// lerpPremultiplied 在预乘 alpha 空间插值后还原为直通 alpha
func lerpPremultiplied(a, b colorutil.Color, t float64) colorutil.Color {
	alpha := a.A + (b.A-a.A)*t
	if alpha <= 0 {
		return colorutil.Transparent
	}
	mix := func(ca, cb uint8) float64 {
		pa := float64(ca) * a.A
		pb := float64(cb) * b.A
		return (pa + (pb-pa)*t) / alpha
	}
	return colorutil.Color{
		R: channel(mix(a.R, b.R)),
		G: channel(mix(a.G, b.G)),
		B: channel(mix(a.B, b.B)),
		A: alpha,
	}
}

func channel(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
