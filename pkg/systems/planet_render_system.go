package systems

import (
	"math"
	"sort"

	"github.com/gonewx/battlefx/internal/colorutil"
	"github.com/gonewx/battlefx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 行星环参数
const (
	RingCount        = 6
	RingSamples      = 64
	ringInnerRatio   = 1.15
	ringOuterRatio   = 3.0
	ringPitch        = 2 * math.Pi / 24
	ringBaseOpacity  = 0.15
	ringMinOpacity   = 0.01
	cassiniPosition  = 0.65
	planetMeshRings  = 8
	atmosphereInner  = 0.95
	atmosphereOuter  = 1.3
	planetFocalShift = 0.25
)

// Vec3 三维点
type Vec3 struct {
	X, Y, Z float64
}

// Project3D 依次绕 X（俯仰）、Y（偏航）、Z（翻滚）轴旋转
//
// 返回的 X/Y 为屏幕平面坐标，Z 作为深度保留。
func Project3D(p Vec3, pitch, yaw, roll float64) Vec3 {
	cosX, sinX := math.Cos(pitch), math.Sin(pitch)
	y1 := p.Y*cosX - p.Z*sinX
	z1 := p.Y*sinX + p.Z*cosX

	cosY, sinY := math.Cos(yaw), math.Sin(yaw)
	x2 := p.X*cosY + z1*sinY
	z2 := -p.X*sinY + z1*cosY

	cosZ, sinZ := math.Cos(roll), math.Sin(roll)
	x3 := x2*cosZ - y1*sinZ
	y3 := x2*sinZ + y1*cosZ

	return Vec3{X: x3, Y: y3, Z: z2}
}

// RingPoint 投影后的环采样点
type RingPoint struct {
	X, Y, Z float64
	Alpha   float64 // 深度透明度
}

// RingBand 一条投影后的环带
type RingBand struct {
	Index      int
	Points     []RingPoint
	AvgZ       float64
	AvgOpacity float64 // 环透明度 × 点深度透明度 的平均值
	AvgAlpha   float64 // 点深度透明度的平均值
}

// DepthAlpha 深度透明度 0.2 + 0.8*(z+r)/(2r)，限制在 [0,1]
func DepthAlpha(z, planetRadius float64) float64 {
	if planetRadius <= 0 {
		return 1
	}
	return colorutil.Clamp01(0.2 + 0.8*(z+planetRadius)/(2*planetRadius))
}

// projectRing 在 XZ 平面采样半径为 ringRadius 的圆并投影
func projectRing(index int, ringRadius, planetRadius, opacity, rotationY float64) RingBand {
	band := RingBand{Index: index, Points: make([]RingPoint, RingSamples)}
	var sumZ, sumOpacity, sumAlpha float64
	for i := 0; i < RingSamples; i++ {
		angle := float64(i) / RingSamples * 2 * math.Pi
		p := Project3D(Vec3{X: math.Cos(angle) * ringRadius, Z: math.Sin(angle) * ringRadius}, ringPitch, rotationY, 0)
		alpha := DepthAlpha(p.Z, planetRadius)
		band.Points[i] = RingPoint{X: p.X, Y: p.Y, Z: p.Z, Alpha: alpha}
		sumZ += p.Z
		sumOpacity += opacity * alpha
		sumAlpha += alpha
	}
	band.AvgZ = sumZ / RingSamples
	band.AvgOpacity = sumOpacity / RingSamples
	band.AvgAlpha = sumAlpha / RingSamples
	return band
}

// RingBands 计算 6 条环带，按平均深度从后往前排序
func RingBands(planetRadius, rotationY float64) []RingBand {
	inner := planetRadius * ringInnerRatio
	outer := planetRadius * ringOuterRatio
	width := (outer - inner) / RingCount

	bands := make([]RingBand, 0, RingCount)
	for i := 0; i < RingCount; i++ {
		radius := inner + float64(i)*width + width*0.5
		opacity := ringBaseOpacity * (1 - float64(i)/RingCount)
		bands = append(bands, projectRing(i, radius, planetRadius, opacity, rotationY))
	}
	sort.SliceStable(bands, func(i, j int) bool { return bands[i].AvgZ < bands[j].AvgZ })
	return bands
}

// PlanetRenderSystem 绘制行星、行星环与轨道
type PlanetRenderSystem struct {
	mesh utils.Mesh
}

// NewPlanetRenderSystem 创建行星渲染系统
func NewPlanetRenderSystem() *PlanetRenderSystem {
	return &PlanetRenderSystem{}
}

// DrawPlanet 绘制行星本体、大气辉光、行星环和两道边缘光
func (s *PlanetRenderSystem) DrawPlanet(canvas *utils.Canvas, x, y, radius float64, base, rings colorutil.Color, rotationY float64) {
	if radius <= 0 {
		return
	}

	surface := utils.NewRadialGradient(
		x-radius*planetFocalShift, y-radius*planetFocalShift, 0,
		x, y, radius,
		utils.GradientStop{Offset: 0, Color: base.Lighten(60).WithAlpha(0.95)},
		utils.GradientStop{Offset: 0.35, Color: base.Lighten(20).WithAlpha(0.60)},
		utils.GradientStop{Offset: 0.70, Color: base.Darken(30).WithAlpha(0.40)},
		utils.GradientStop{Offset: 1, Color: base.Darken(60).WithAlpha(0.25)},
	)
	s.mesh.Reset()
	s.mesh.AddDisc(x, y, radius, planetMeshRings, utils.SegmentsForRadius(radius), surface.ColorAt)
	canvas.DrawMesh(&s.mesh, 1, noBlend)

	glowRadius := radius * atmosphereOuter
	atmosphere := utils.NewConcentricGradient(x, y, radius*atmosphereInner, glowRadius,
		utils.GradientStop{Offset: 0, Color: base.WithAlpha(0.05)},
		utils.GradientStop{Offset: 0.6, Color: base.WithAlpha(0.02)},
		utils.GradientStop{Offset: 1, Color: colorutil.Transparent},
	)
	s.mesh.Reset()
	s.mesh.AddDisc(x, y, glowRadius, planetMeshRings, utils.SegmentsForRadius(glowRadius), atmosphere.ColorAt)
	canvas.DrawMesh(&s.mesh, 1, noBlend)

	s.DrawRings(canvas, x, y, radius, rings, rotationY)

	canvas.StrokeCircle(x, y, radius, utils.StrokeStyle{Width: 0.8, Color: base.Lighten(30).WithAlpha(0.25)})
	canvas.StrokeCircle(x, y, radius-0.5, utils.StrokeStyle{Width: 0.5, Color: base.Lighten(15).WithAlpha(0.15)})
}

// DrawRings 按深度从后往前描边环带，最后绘制卡西尼缝
//
// 环带颜色取主题环色，主题颜色自身的 alpha 作为额外的透明度系数。
func (s *PlanetRenderSystem) DrawRings(canvas *utils.Canvas, cx, cy, planetRadius float64, ringColor colorutil.Color, rotationY float64) {
	inner := planetRadius * ringInnerRatio
	outer := planetRadius * ringOuterRatio
	ringWidth := (outer - inner) / RingCount

	for _, band := range RingBands(planetRadius, rotationY) {
		if band.AvgOpacity < ringMinOpacity {
			continue
		}
		globalAlpha := 0.4 + math.Sin(float64(band.Index)*0.7)*0.15
		canvas.StrokePath(closedRingPath(cx, cy, band.Points), utils.StrokeStyle{
			Width: math.Max(2, ringWidth*0.8*math.Sqrt(band.AvgOpacity)),
			Color: ringColor.WithAlpha(band.AvgOpacity * ringColor.A * globalAlpha),
		})
	}

	gapRadius := inner + (outer-inner)*cassiniPosition
	gap := projectRing(-1, gapRadius, planetRadius, 1, rotationY)
	canvas.StrokePath(closedRingPath(cx, cy, gap.Points), utils.StrokeStyle{
		Width: math.Max(1.5, ringWidth*0.9*gap.AvgAlpha),
		Color: colorutil.RGBA(2, 4, 8, 0.4*gap.AvgAlpha),
	})
}

func closedRingPath(cx, cy float64, points []RingPoint) *vector.Path {
	var path vector.Path
	for i, p := range points {
		if i == 0 {
			path.MoveTo(float32(cx+p.X), float32(cy+p.Y))
			continue
		}
		path.LineTo(float32(cx+p.X), float32(cy+p.Y))
	}
	path.Close()
	return &path
}

// DrawOrbits 绘制 3/4 虚线轨道弧
func (s *PlanetRenderSystem) DrawOrbits(canvas *utils.Canvas, cx, cy float64, radii []float64, color colorutil.Color) {
	style := utils.StrokeStyle{Width: 0.8, Color: color}
	for _, r := range radii {
		canvas.StrokeDashedArc(cx, cy, r, 0, 1.5*math.Pi, 3, 6, style)
	}
}
