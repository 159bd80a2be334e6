package utils

import (
	"image"
	"math"

	"github.com/gonewx/battlefx/internal/colorutil"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)

	// whiteSubImage 作为 DrawTriangles 的纯色源，取中心像素避免边缘采样
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	b := whiteImage.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	for i := range pix {
		pix[i] = 0xff
	}
	whiteImage.WritePixels(pix)
}

// LineCap 线帽样式
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
)

// StrokeStyle 描边样式
type StrokeStyle struct {
	Width float64
	Color colorutil.Color
	Cap   LineCap
	Blend ebiten.Blend
}

// Canvas 以画布中心为原点的绘制表面
//
// 所有绘制坐标都是"中心坐标"，在提交顶点时统一加上 (OX, OY) 转换为屏幕坐标，
// 与世界坐标到屏幕坐标的摄像机偏移同理。
// Canvas 持有顶点缓冲复用，不可并发使用。
type Canvas struct {
	dst    *ebiten.Image
	OX, OY float64

	vs []ebiten.Vertex
	is []uint16
}

// NewCanvas 包装目标图像，原点设为图像中心
func NewCanvas(dst *ebiten.Image) *Canvas {
	c := &Canvas{}
	c.Reset(dst)
	return c
}

// Reset 切换目标图像（例如窗口尺寸变化后）
func (c *Canvas) Reset(dst *ebiten.Image) {
	c.dst = dst
	b := dst.Bounds()
	c.OX = float64(b.Min.X) + float64(b.Dx())/2
	c.OY = float64(b.Min.Y) + float64(b.Dy())/2
}

// Image 返回目标图像
func (c *Canvas) Image() *ebiten.Image {
	return c.dst
}

// Size 返回画布像素尺寸
func (c *Canvas) Size() (w, h int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

// Width 画布宽度
func (c *Canvas) Width() float64 {
	w, _ := c.Size()
	return float64(w)
}

// Height 画布高度
func (c *Canvas) Height() float64 {
	_, h := c.Size()
	return float64(h)
}

// Fill 用颜色覆盖整个画布
func (c *Canvas) Fill(col colorutil.Color) {
	c.dst.Fill(col.NRGBA())
}

// FillRect 填充矩形（中心坐标）
func (c *Canvas) FillRect(x, y, w, h float64, col colorutil.Color, blend ebiten.Blend) {
	var m Mesh
	m.AddRectGrid(x, y, w, h, 1, 1, SolidColor(col))
	c.DrawMesh(&m, 1, blend)
}

// FillCircle 填充纯色圆
func (c *Canvas) FillCircle(x, y, r float64, col colorutil.Color, blend ebiten.Blend) {
	if r <= 0 || col.A <= 0 {
		return
	}
	var m Mesh
	m.AddDisc(x, y, r, 1, SegmentsForRadius(r), SolidColor(col))
	c.DrawMesh(&m, 1, blend)
}

// GlowCircle 近似画布 shadowBlur：在圆外叠加若干层渐淡的光晕
func (c *Canvas) GlowCircle(x, y, r, blur float64, col colorutil.Color) {
	if blur <= 0 || col.A <= 0 {
		return
	}
	outer := r + blur
	g := NewConcentricGradient(x, y, r*0.5, outer,
		GradientStop{Offset: 0, Color: col.MulAlpha(0.5)},
		GradientStop{Offset: 1, Color: col.WithAlpha(0)},
	)
	var m Mesh
	m.AddDisc(x, y, outer, 3, SegmentsForRadius(outer), g.ColorAt)
	c.DrawMesh(&m, 1, ebiten.Blend{})
}

// DrawMesh 提交网格，alpha 作为全局透明度乘到每个顶点
func (c *Canvas) DrawMesh(m *Mesh, alpha float64, blend ebiten.Blend) {
	if m.Len() == 0 || alpha <= 0 {
		return
	}
	a := float32(colorutil.Clamp01(alpha))
	c.vs = append(c.vs[:0], m.Vertices...)
	c.is = append(c.is[:0], m.Indices...)
	for i := range c.vs {
		c.vs[i].DstX += float32(c.OX)
		c.vs[i].DstY += float32(c.OY)
		c.vs[i].ColorA *= a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, Blend: blend}
	c.dst.DrawTriangles(c.vs, c.is, whiteSubImage, op)
}

// StrokePath 描边路径（路径使用中心坐标）
func (c *Canvas) StrokePath(path *vector.Path, style StrokeStyle) {
	if style.Width <= 0 || style.Color.A <= 0 {
		return
	}
	opts := &vector.StrokeOptions{
		Width:    float32(style.Width),
		LineJoin: vector.LineJoinRound,
	}
	if style.Cap == CapRound {
		opts.LineCap = vector.LineCapRound
	}
	c.vs, c.is = path.AppendVerticesAndIndicesForStroke(c.vs[:0], c.is[:0], opts)

	r, g, b, a := style.Color.Floats()
	for i := range c.vs {
		c.vs[i].DstX += float32(c.OX)
		c.vs[i].DstY += float32(c.OY)
		c.vs[i].SrcX = 1
		c.vs[i].SrcY = 1
		c.vs[i].ColorR = r
		c.vs[i].ColorG = g
		c.vs[i].ColorB = b
		c.vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, Blend: style.Blend}
	c.dst.DrawTriangles(c.vs, c.is, whiteSubImage, op)
}

// StrokeLine 描边线段
func (c *Canvas) StrokeLine(x0, y0, x1, y1 float64, style StrokeStyle) {
	var p vector.Path
	p.MoveTo(float32(x0), float32(y0))
	p.LineTo(float32(x1), float32(y1))
	c.StrokePath(&p, style)
}

// GlowLine 带光晕的线段：先画若干层更宽的低透明度描边，再画主体
func (c *Canvas) GlowLine(x0, y0, x1, y1, blur float64, style StrokeStyle) {
	const layers = 3
	for i := layers; i >= 1; i-- {
		halo := style
		halo.Width = style.Width + blur*float64(i)/layers
		halo.Color = style.Color.MulAlpha(0.35 / float64(i+1))
		halo.Cap = CapRound
		c.StrokeLine(x0, y0, x1, y1, halo)
	}
	c.StrokeLine(x0, y0, x1, y1, style)
}

// StrokeCircle 描边整圆
func (c *Canvas) StrokeCircle(x, y, r float64, style StrokeStyle) {
	if r <= 0 {
		return
	}
	var p vector.Path
	p.Arc(float32(x), float32(y), float32(r), 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	c.StrokePath(&p, style)
}

// StrokeDashedArc 虚线圆弧，dash/gap 为沿弧长的像素长度
func (c *Canvas) StrokeDashedArc(x, y, r, a0, a1, dash, gap float64, style StrokeStyle) {
	if r <= 0 || dash <= 0 || a1 <= a0 {
		return
	}
	var p vector.Path
	appendDashedArc(&p, x, y, r, a0, a1, dash, gap)
	c.StrokePath(&p, style)
}

// appendDashedArc 将虚线弧的每一段作为独立子路径追加到 p
func appendDashedArc(p *vector.Path, x, y, r, a0, a1, dash, gap float64) {
	dashAngle := dash / r
	step := (dash + gap) / r
	for a := a0; a < a1; a += step {
		end := math.Min(a+dashAngle, a1)
		p.MoveTo(float32(x+math.Cos(a)*r), float32(y+math.Sin(a)*r))
		p.Arc(float32(x), float32(y), float32(r), float32(a), float32(end), vector.Clockwise)
	}
}

// DrawImageAt 将图像左上角放在中心坐标 (x,y)，alpha 为全局透明度
func (c *Canvas) DrawImageAt(img *ebiten.Image, x, y, alpha float64, blend ebiten.Blend) {
	if img == nil || alpha <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{Blend: blend}
	op.GeoM.Translate(x+c.OX, y+c.OY)
	op.ColorScale.ScaleAlpha(float32(alpha))
	c.dst.DrawImage(img, op)
}
