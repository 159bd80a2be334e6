package colorutil

import (
	"math/rand"
	"testing"
)

// TestHSLRoundTrip 测试 RGB -> HSL -> RGB 往返（允许 ±1 舍入误差）
func TestHSLRoundTrip(t *testing.T) {
	samples := [][3]int{}
	for _, r := range []int{0, 128, 255} {
		for _, g := range []int{0, 128, 255} {
			for _, b := range []int{0, 128, 255} {
				samples = append(samples, [3]int{r, g, b})
			}
		}
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		samples = append(samples, [3]int{rng.Intn(256), rng.Intn(256), rng.Intn(256)})
	}

	for _, s := range samples {
		h, sat, l := RGBToHSL(s[0], s[1], s[2])
		r, g, b := HSLToRGB(h, sat, l)
		if absInt(r-s[0]) > 1 || absInt(g-s[1]) > 1 || absInt(b-s[2]) > 1 {
			t.Errorf("round trip %v -> (%.4f, %.4f, %.4f) -> (%d, %d, %d)", s, h, sat, l, r, g, b)
		}
	}
}

func TestRGBToHSLAchromatic(t *testing.T) {
	for _, v := range []int{0, 77, 255} {
		h, s, l := RGBToHSL(v, v, v)
		if h != 0 || s != 0 {
			t.Errorf("gray %d: h=%v s=%v, want 0 0", v, h, s)
		}
		if want := float64(v) / 255; l < want-1e-9 || l > want+1e-9 {
			t.Errorf("gray %d: l=%v, want %v", v, l, want)
		}
	}
}

func TestRGBToHSLPrimaries(t *testing.T) {
	tests := []struct {
		r, g, b int
		h       float64
	}{
		{255, 0, 0, 0},
		{0, 255, 0, 1.0 / 3},
		{0, 0, 255, 2.0 / 3},
	}
	for _, tt := range tests {
		h, s, l := RGBToHSL(tt.r, tt.g, tt.b)
		if d := h - tt.h; d > 1e-9 || d < -1e-9 {
			t.Errorf("(%d,%d,%d) h=%v, want %v", tt.r, tt.g, tt.b, h, tt.h)
		}
		if s != 1 || l != 0.5 {
			t.Errorf("(%d,%d,%d) s=%v l=%v, want 1 0.5", tt.r, tt.g, tt.b, s, l)
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
