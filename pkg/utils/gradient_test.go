package utils

import (
	"math"
	"testing"

	"github.com/gonewx/battlefx/internal/colorutil"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// TestRadialGradientConcentric 同心渐变的参数等于归一化半径
func TestRadialGradientConcentric(t *testing.T) {
	g := NewConcentricGradient(0, 0, 0, 100)

	tests := []struct {
		x, y float64
		want float64
	}{
		{0, 0, 0},
		{50, 0, 0.5},
		{0, -100, 1},
		{60, 80, 1},
		{300, 0, 3},
	}
	for _, tt := range tests {
		got, ok := g.T(tt.x, tt.y)
		if !ok || !approx(got, tt.want) {
			t.Errorf("T(%v, %v) = %v, %v; want %v", tt.x, tt.y, got, ok, tt.want)
		}
	}
}

func TestRadialGradientInnerRadius(t *testing.T) {
	g := NewConcentricGradient(0, 0, 95, 130)
	got, ok := g.T(95, 0)
	if !ok || !approx(got, 0) {
		t.Errorf("T at inner radius = %v, %v; want 0", got, ok)
	}
	got, ok = g.T(0, 130)
	if !ok || !approx(got, 1) {
		t.Errorf("T at outer radius = %v, %v; want 1", got, ok)
	}
	// 内圆以内取负参数，按色标延展
	got, ok = g.T(0, 0)
	if !ok || got >= 0 {
		t.Errorf("T at center = %v, %v; want negative", got, ok)
	}
}

// TestRadialGradientFocal 焦点偏移：焦点处 t=0，外圆上 t=1
func TestRadialGradientFocal(t *testing.T) {
	r := 40.0
	g := NewRadialGradient(-0.25*r, -0.25*r, 0, 0, 0, r)

	if got, ok := g.T(-0.25*r, -0.25*r); !ok || !approx(got, 0) {
		t.Errorf("T at focal point = %v, %v; want 0", got, ok)
	}
	for _, angle := range []float64{0, math.Pi / 3, math.Pi, 4} {
		x, y := math.Cos(angle)*r, math.Sin(angle)*r
		if got, ok := g.T(x, y); !ok || !approx(got, 1) {
			t.Errorf("T on outer circle at angle %v = %v, %v; want 1", angle, got, ok)
		}
	}
}

func TestColorAtOffset(t *testing.T) {
	red := colorutil.RGBA(255, 0, 0, 1)
	clear := colorutil.RGBA(0, 0, 0, 0)
	g := NewConcentricGradient(0, 0, 0, 10,
		GradientStop{Offset: 1, Color: clear},
		GradientStop{Offset: 0, Color: red},
	)

	if got := g.ColorAtOffset(-1); got != red {
		t.Errorf("below range = %+v, want red", got)
	}
	if got := g.ColorAtOffset(2); got != clear {
		t.Errorf("above range = %+v, want transparent", got)
	}

	mid := g.ColorAtOffset(0.5)
	if mid.R != 255 || mid.G != 0 || !approx(mid.A, 0.5) {
		t.Errorf("premultiplied midpoint = %+v, want red at alpha 0.5", mid)
	}
}

func TestColorAtOffsetNoStops(t *testing.T) {
	g := NewConcentricGradient(0, 0, 0, 10)
	if got := g.ColorAt(1, 1); got != colorutil.Transparent {
		t.Errorf("gradient without stops = %+v, want transparent", got)
	}
}
