package systems

import (
	"math"

	"github.com/gonewx/battlefx/internal/colorutil"
	"github.com/gonewx/battlefx/pkg/components"
	"github.com/gonewx/battlefx/pkg/config"
	"github.com/gonewx/battlefx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 拖尾参数
const (
	trailMoveThreshold = 1.5  // 移动超过该距离才追加点
	trailStepLength    = 3.0  // 插值点间距
	trailStaggerMs     = 16.0 // 插值点时间戳间隔
	MaxTrailPoints     = 20
	trailMinPointAlpha = 0.01
	trailMinDrawAlpha  = 0.02
	trailCoreThreshold = 0.4
)

type trailState struct {
	trail        components.Trail
	lastX, lastY float64
}

// TrailSystem 管理舰船推进器拖尾
//
// 时间由调用方以毫秒传入，便于测试注入确定的时钟。
type TrailSystem struct {
	trails map[string]*trailState
}

// NewTrailSystem 创建拖尾系统
func NewTrailSystem() *TrailSystem {
	return &TrailSystem{trails: make(map[string]*trailState)}
}

// UpdateTrail 记录实体 id 在 nowMs 时刻的位置
//
// 首次出现时写入种子点；之后移动超过 1.5 时从最后一个拖尾点插值
// ceil(d/3) 个点，时间戳按 16ms 错开；最多保留 20 个点。
// 最后按 1000ms 寿命老化所有点，透明度不超过 0.01 的点被移除。
func (ts *TrailSystem) UpdateTrail(id string, x, y float64, color colorutil.Color, nowMs float64) {
	st, ok := ts.trails[id]
	if !ok {
		st = &trailState{
			trail: components.Trail{
				Points: []components.TrailPoint{{X: x, Y: y, Timestamp: nowMs, Alpha: 1}},
				Color:  color,
			},
			lastX: x,
			lastY: y,
		}
		ts.trails[id] = st
	}

	distance := math.Hypot(x-st.lastX, y-st.lastY)
	if distance > trailMoveThreshold {
		points := st.trail.Points
		if n := len(points); n > 0 {
			from := points[n-1]
			steps := int(math.Ceil(distance / trailStepLength))
			for step := 1; step <= steps; step++ {
				t := float64(step) / float64(steps)
				points = append(points, components.TrailPoint{
					X:         from.X + (x-from.X)*t,
					Y:         from.Y + (y-from.Y)*t,
					Timestamp: nowMs - float64(steps-step)*trailStaggerMs,
					Alpha:     1,
				})
			}
		} else {
			points = append(points, components.TrailPoint{X: x, Y: y, Timestamp: nowMs, Alpha: 1})
		}

		if len(points) > MaxTrailPoints {
			points = append(points[:0], points[len(points)-MaxTrailPoints:]...)
		}
		st.trail.Points = points
		st.trail.Color = color
		st.lastX, st.lastY = x, y
	}

	kept := st.trail.Points[:0]
	for _, p := range st.trail.Points {
		p.Alpha = math.Max(0, 1-(nowMs-p.Timestamp)/config.TrailLifetimeMs)
		if p.Alpha > trailMinPointAlpha {
			kept = append(kept, p)
		}
	}
	st.trail.Points = kept
}

// DrawTrail 绘制实体 id 的拖尾
//
// 至少 3 个点才绘制。中间各段用二次曲线连接到相邻中点，
// 颜色偏暖（+30,+15,-20），宽度随透明度收窄；较新的段叠加亮芯。
// 最后两点之间补一段直线。
func (ts *TrailSystem) DrawTrail(canvas *utils.Canvas, id string) {
	st, ok := ts.trails[id]
	if !ok || len(st.trail.Points) < 3 {
		return
	}
	points := st.trail.Points
	baseAlpha := st.trail.Color.A
	thruster := st.trail.Color.Add(30, 15, -20)
	core := thruster.Add(60, 60, 40)

	for i := 1; i < len(points)-1; i++ {
		prev, curr, next := points[i-1], points[i], points[i+1]
		var path vector.Path
		path.MoveTo(float32(prev.X), float32(prev.Y))
		path.QuadTo(float32(curr.X), float32(curr.Y), float32((curr.X+next.X)/2), float32((curr.Y+next.Y)/2))
		drawTrailSegment(canvas, &path, curr.Alpha, baseAlpha, thruster, core)
	}

	prev, curr := points[len(points)-2], points[len(points)-1]
	var path vector.Path
	path.MoveTo(float32(prev.X), float32(prev.Y))
	path.LineTo(float32(curr.X), float32(curr.Y))
	drawTrailSegment(canvas, &path, curr.Alpha, baseAlpha, thruster, core)
}

func drawTrailSegment(canvas *utils.Canvas, path *vector.Path, segAlpha, baseAlpha float64, thruster, core colorutil.Color) {
	alpha := segAlpha * baseAlpha * 0.8
	if alpha < trailMinDrawAlpha {
		return
	}
	width := math.Max(0.8, 5*segAlpha)
	canvas.StrokePath(path, utils.StrokeStyle{
		Width: width,
		Color: thruster.WithAlpha(alpha),
		Cap:   utils.CapRound,
	})
	if segAlpha > trailCoreThreshold {
		canvas.StrokePath(path, utils.StrokeStyle{
			Width: math.Max(0.5, width*0.3),
			Color: core.WithAlpha(alpha * 0.7),
			Cap:   utils.CapRound,
		})
	}
}

// Points 返回实体 id 的拖尾点（副本）
func (ts *TrailSystem) Points(id string) []components.TrailPoint {
	st, ok := ts.trails[id]
	if !ok {
		return nil
	}
	out := make([]components.TrailPoint, len(st.trail.Points))
	copy(out, st.trail.Points)
	return out
}

// Prune 移除不在 active 中的实体拖尾
func (ts *TrailSystem) Prune(active map[string]bool) {
	for id := range ts.trails {
		if !active[id] {
			delete(ts.trails, id)
		}
	}
}

// Len 返回正在追踪的实体数量
func (ts *TrailSystem) Len() int {
	return len(ts.trails)
}
