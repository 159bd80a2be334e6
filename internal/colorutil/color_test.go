package colorutil

import (
	"errors"
	"testing"

	"golang.org/x/image/colornames"
)

// TestParse 测试 rgb()/rgba() 解析
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{"rgb", "rgb(10, 20, 30)", Color{10, 20, 30, 1}, false},
		{"rgba", "rgba(255,0,128,0.5)", Color{255, 0, 128, 0.5}, false},
		{"rgba leading dot", "rgba(1, 2, 3, .25)", Color{1, 2, 3, 0.25}, false},
		{"whitespace", "  rgb( 0 , 0 , 0 )  ", Color{0, 0, 0, 1}, false},
		{"rgb with alpha", "rgb(1, 2, 3, 0.4)", Color{1, 2, 3, 0.4}, false},
		{"channel overflow", "rgb(256, 0, 0)", Color{}, true},
		{"alpha overflow", "rgba(0, 0, 0, 1.5)", Color{}, true},
		{"garbage", "notacolor", Color{}, true},
		{"hex", "#ff0000", Color{}, true},
		{"empty", "", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidColor", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

// TestStringRoundTrip 输出的字符串必须能被 Parse 重新解析
func TestStringRoundTrip(t *testing.T) {
	colors := []Color{
		{0, 0, 0, 0},
		{255, 255, 255, 1},
		{12, 34, 56, 0.3},
		{200, 100, 50, 0.125},
	}
	for _, c := range colors {
		for _, s := range []string{c.String(), c.RGBString()} {
			got, err := Parse(s)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", s, err)
			}
			if got.R != c.R || got.G != c.G || got.B != c.B {
				t.Errorf("channels changed through %q: got %+v, want %+v", s, got, c)
			}
		}
		got := ParseOr(c.String(), Black)
		if got.A != c.A {
			t.Errorf("alpha changed through %q: got %v, want %v", c.String(), got.A, c.A)
		}
	}
}

func TestParseOr(t *testing.T) {
	if got := ParseOr("bogus", White); got != White {
		t.Errorf("ParseOr fallback = %+v, want White", got)
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(colornames.Gold, 0.9)
	want := Color{255, 215, 0, 0.9}
	if got != want {
		t.Errorf("FromColor(Gold) = %+v, want %+v", got, want)
	}
}

func TestScaleAndAdd(t *testing.T) {
	c := RGBA(100, 150, 200, 0.5)

	if got := c.Scale(0.5); got != (Color{50, 75, 100, 0.5}) {
		t.Errorf("Scale(0.5) = %+v", got)
	}
	if got := c.Scale(2); got != (Color{200, 255, 255, 0.5}) {
		t.Errorf("Scale(2) should clamp, got %+v", got)
	}
	if got := c.Add(30, 15, -250); got != (Color{130, 165, 0, 0.5}) {
		t.Errorf("Add = %+v", got)
	}
}

func TestLerp(t *testing.T) {
	a := RGBA(0, 0, 0, 0)
	b := RGBA(200, 100, 50, 1)

	if got := Lerp(a, b, 0.5); got != (Color{100, 50, 25, 0.5}) {
		t.Errorf("Lerp(0.5) = %+v", got)
	}
	if got := Lerp(a, b, 2); got != b {
		t.Errorf("Lerp should clamp t, got %+v", got)
	}
}

func TestWithAlphaClamps(t *testing.T) {
	c := RGB(1, 2, 3)
	if got := c.WithAlpha(-1).A; got != 0 {
		t.Errorf("WithAlpha(-1).A = %v, want 0", got)
	}
	if got := c.MulAlpha(3).A; got != 1 {
		t.Errorf("MulAlpha(3).A = %v, want 1", got)
	}
}
