package utils

import (
	"math"

	"github.com/gonewx/battlefx/internal/colorutil"
	"github.com/hajimehoshi/ebiten/v2"
)

// ColorFunc 返回画布坐标 (x,y) 处的顶点颜色
type ColorFunc func(x, y float64) colorutil.Color

// SolidColor 返回恒定颜色的 ColorFunc
func SolidColor(c colorutil.Color) ColorFunc {
	return func(float64, float64) colorutil.Color { return c }
}

// GradientColor 将径向渐变适配为 ColorFunc
func GradientColor(g *RadialGradient) ColorFunc {
	return g.ColorAt
}

// Mesh 顶点着色的三角形网格
//
// 坐标为画布坐标（以画布中心为原点），由 Canvas.DrawMesh 统一平移。
// 渐变通过逐顶点着色近似：环数和分段数越多越精确。
type Mesh struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// Reset 清空网格，保留底层缓冲
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// Len 返回顶点数量
func (m *Mesh) Len() int {
	return len(m.Vertices)
}

func (m *Mesh) addVertex(x, y float64, fn ColorFunc) uint16 {
	r, g, b, a := fn(x, y).Floats()
	m.Vertices = append(m.Vertices, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: r,
		ColorG: g,
		ColorB: b,
		ColorA: a,
	})
	return uint16(len(m.Vertices) - 1)
}

// AddSector 添加扇形（从角度 a0 到 a1，按画布方向顺时针增长）
//
// 扇形从圆心开始分 rings 圈、每圈 segments 段，顶点颜色由 fn 决定。
func (m *Mesh) AddSector(cx, cy, radius, a0, a1 float64, rings, segments int, fn ColorFunc) {
	if radius <= 0 || a1 <= a0 {
		return
	}
	if rings < 1 {
		rings = 1
	}
	if segments < 1 {
		segments = 1
	}

	center := m.addVertex(cx, cy, fn)
	prevRing := make([]uint16, 0, segments+1)
	ring := make([]uint16, 0, segments+1)

	for k := 1; k <= rings; k++ {
		r := radius * float64(k) / float64(rings)
		ring = ring[:0]
		for s := 0; s <= segments; s++ {
			angle := a0 + (a1-a0)*float64(s)/float64(segments)
			ring = append(ring, m.addVertex(cx+math.Cos(angle)*r, cy+math.Sin(angle)*r, fn))
		}

		for s := 0; s < segments; s++ {
			if k == 1 {
				m.Indices = append(m.Indices, center, ring[s], ring[s+1])
				continue
			}
			m.Indices = append(m.Indices,
				prevRing[s], ring[s], ring[s+1],
				prevRing[s], ring[s+1], prevRing[s+1],
			)
		}
		prevRing, ring = ring, prevRing
	}
}

// AddDisc 添加完整圆盘
func (m *Mesh) AddDisc(cx, cy, radius float64, rings, segments int, fn ColorFunc) {
	m.AddSector(cx, cy, radius, 0, 2*math.Pi, rings, segments, fn)
}

// AddRectGrid 添加矩形网格（用于全屏渐变，如暗角）
func (m *Mesh) AddRectGrid(x, y, w, h float64, cols, rows int, fn ColorFunc) {
	if w <= 0 || h <= 0 {
		return
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	base := uint16(len(m.Vertices))
	for j := 0; j <= rows; j++ {
		for i := 0; i <= cols; i++ {
			m.addVertex(x+w*float64(i)/float64(cols), y+h*float64(j)/float64(rows), fn)
		}
	}
	stride := uint16(cols + 1)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			tl := base + uint16(j)*stride + uint16(i)
			tr := tl + 1
			bl := tl + stride
			br := bl + 1
			m.Indices = append(m.Indices, tl, tr, br, tl, br, bl)
		}
	}
}

// SegmentsForRadius 根据半径选择圆周分段数
func SegmentsForRadius(radius float64) int {
	n := int(math.Ceil(radius * 1.5))
	if n < 16 {
		return 16
	}
	if n > 96 {
		return 96
	}
	return n
}
