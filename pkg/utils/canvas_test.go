package utils

import (
	"testing"

	"github.com/gonewx/battlefx/internal/colorutil"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TestCanvasOrigin 原点位于图像中心
func TestCanvasOrigin(t *testing.T) {
	img := ebiten.NewImage(200, 100)
	c := NewCanvas(img)

	if c.OX != 100 || c.OY != 50 {
		t.Errorf("origin: got (%v, %v), want (100, 50)", c.OX, c.OY)
	}
	if c.Width() != 200 || c.Height() != 100 {
		t.Errorf("size: got %vx%v, want 200x100", c.Width(), c.Height())
	}

	c.Reset(ebiten.NewImage(40, 60))
	if c.OX != 20 || c.OY != 30 {
		t.Errorf("origin after Reset: got (%v, %v), want (20, 30)", c.OX, c.OY)
	}
}

// TestCanvasDrawSmoke 各绘制原语不应 panic
func TestCanvasDrawSmoke(t *testing.T) {
	c := NewCanvas(ebiten.NewImage(120, 120))
	blue := colorutil.RGBA(100, 150, 255, 0.9)

	c.Fill(colorutil.RGB(8, 10, 12))
	c.FillRect(-60, -60, 120, 120, blue, BlendMultiply)
	c.FillCircle(0, 0, 10, blue, ebiten.Blend{})
	c.FillCircle(0, 0, 0, blue, ebiten.Blend{})
	c.GlowCircle(5, 5, 3, 4, blue)
	c.StrokeLine(-10, 0, 10, 0, StrokeStyle{Width: 2, Color: blue, Cap: CapRound})
	c.GlowLine(-10, 5, 10, 5, 12, StrokeStyle{Width: 3, Color: blue})
	c.StrokeCircle(0, 0, 20, StrokeStyle{Width: 0.8, Color: blue})
	c.StrokeDashedArc(0, 0, 30, 0, 4.7, 3, 6, StrokeStyle{Width: 0.8, Color: blue})

	var p vector.Path
	p.MoveTo(0, 0)
	p.QuadTo(10, 10, 20, 0)
	c.StrokePath(&p, StrokeStyle{Width: 1, Color: blue, Blend: BlendScreen})

	c.DrawImageAt(ebiten.NewImage(10, 10), -5, -5, 0.04, BlendLift)
	c.DrawImageAt(nil, 0, 0, 1, BlendPress)
}

func TestAppendDashedArcSegments(t *testing.T) {
	var p vector.Path
	// 半径 10，dash=gap=π*10/4 → 每段 π/4，半圆内 2 段
	r := 10.0
	seg := 3.14159265 * r / 4
	appendDashedArc(&p, 0, 0, r, 0, 3.14159265, seg, seg)

	vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: 1})
	if len(vs) == 0 || len(is) == 0 {
		t.Error("dashed arc produced no geometry")
	}
}
