package systems

import (
	"math"

	"github.com/gonewx/battlefx/internal/colorutil"
	"github.com/gonewx/battlefx/pkg/components"
	"github.com/gonewx/battlefx/pkg/config"
	"github.com/gonewx/battlefx/pkg/utils"
	"golang.org/x/image/colornames"
)

// 弹道参数
const (
	ProjectileSpeed    = 400.0 // 像素/秒
	ProjectileLifetime = 0.8   // 秒
	ProjectileLength   = 35.0  // 直线尾迹长度
	projectileTailStep = 0.05  // 曲线尾迹回退的进度
	projectileGlow     = 12.0  // 光晕模糊半径
	surfaceTolerance   = 10.0  // 端点距球面多近时走曲线
)

// ProjectileStyle 弹道外观
type ProjectileStyle struct {
	Color colorutil.Color
	Width float64
}

// 弹道配色，优先级：即死 > 暴击 > 未命中 > 命中
var (
	styleInstantKill = ProjectileStyle{Color: colorutil.RGBA(255, 50, 50, 0.95), Width: 5}
	styleCritical    = ProjectileStyle{Color: colorutil.FromColor(colornames.Gold, 0.9), Width: 4}
	styleMiss        = ProjectileStyle{Color: colorutil.RGBA(150, 150, 150, 0.7), Width: 2.5}
	styleHit         = ProjectileStyle{Color: colorutil.RGBA(100, 150, 255, 0.9), Width: 3}
)

// StyleFor 根据结果标志选择弹道外观
func StyleFor(o components.ProjectileOutcome) ProjectileStyle {
	switch {
	case o.IsInstantKill:
		return styleInstantKill
	case o.IsCritical:
		return styleCritical
	case !o.IsHit:
		return styleMiss
	default:
		return styleHit
	}
}

// ProjectileSystem 管理飞行中的弹道
//
// 两端都贴近参考球面时沿球面做角度插值，否则线性插值。
// 参考球在 Fire 时捕获，之后行星移动不影响已发射的弹道。
type ProjectileSystem struct {
	projectiles []components.Projectile
	sphere      components.ReferenceSphere
}

// NewProjectileSystem 创建弹道系统，默认参考球为原点、半径 70
func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{
		sphere: components.ReferenceSphere{Radius: config.DefaultReferenceSphereRadius},
	}
}

// SetReferenceSphere 设置后续发射使用的参考球
func (ps *ProjectileSystem) SetReferenceSphere(cx, cy, radius float64) {
	ps.sphere = components.ReferenceSphere{CenterX: cx, CenterY: cy, Radius: radius}
}

// ReferenceSphere 返回当前参考球
func (ps *ProjectileSystem) ReferenceSphere() components.ReferenceSphere {
	return ps.sphere
}

// Fire 发射一枚弹道
func (ps *ProjectileSystem) Fire(startX, startY, endX, endY float64, isHit, isCritical, isInstantKill bool) {
	ps.projectiles = append(ps.projectiles, components.Projectile{
		StartX:   startX,
		StartY:   startY,
		EndX:     endX,
		EndY:     endY,
		CurrentX: startX,
		CurrentY: startY,
		Lifetime: ProjectileLifetime,
		Speed:    ProjectileSpeed,
		Length:   ProjectileLength,
		Outcome: components.ProjectileOutcome{
			IsHit:         isHit,
			IsCritical:    isCritical,
			IsInstantKill: isInstantKill,
		},
		Sphere: ps.sphere,
	})
}

// Update 推进弹道，到达终点或超时即移除
//
// 起止点重合时进度直接为 1。
func (ps *ProjectileSystem) Update(dt float64) {
	alive := ps.projectiles[:0]
	for _, p := range ps.projectiles {
		p.Age += dt

		distance := math.Hypot(p.EndX-p.StartX, p.EndY-p.StartY)
		if distance == 0 {
			p.Progress = 1
		} else {
			p.Progress = math.Min(1, p.Progress+p.Speed*dt/distance)
		}
		p.CurrentX, p.CurrentY = PositionAt(&p, p.Progress)

		if p.Age >= p.Lifetime || p.Progress >= 1 {
			continue
		}
		alive = append(alive, p)
	}
	ps.projectiles = alive
}

// Draw 绘制所有弹道：从尾部到当前位置的发光圆头线段
func (ps *ProjectileSystem) Draw(canvas *utils.Canvas) {
	for i := range ps.projectiles {
		p := &ps.projectiles[i]
		tailX, tailY, ok := tailOf(p)
		if !ok {
			continue
		}
		style := StyleFor(p.Outcome)
		canvas.GlowLine(tailX, tailY, p.CurrentX, p.CurrentY, projectileGlow, utils.StrokeStyle{
			Width: style.Width,
			Color: style.Color,
			Cap:   utils.CapRound,
		})
	}
}

// Count 返回飞行中的弹道数量
func (ps *ProjectileSystem) Count() int {
	return len(ps.projectiles)
}

// Projectiles 返回弹道快照（副本）
func (ps *ProjectileSystem) Projectiles() []components.Projectile {
	out := make([]components.Projectile, len(ps.projectiles))
	copy(out, ps.projectiles)
	return out
}

// PositionAt 计算弹道在给定进度的位置
//
// 两端到参考球心的距离都在半径 ±10 以内时，绕球心按最短角度插值，
// 半径从起点偏移线性过渡到终点偏移；否则直线插值。
func PositionAt(p *components.Projectile, progress float64) (x, y float64) {
	s := p.Sphere
	sx, sy := p.StartX-s.CenterX, p.StartY-s.CenterY
	ex, ey := p.EndX-s.CenterX, p.EndY-s.CenterY
	startR := math.Hypot(sx, sy)
	endR := math.Hypot(ex, ey)

	if math.Abs(startR-s.Radius) < surfaceTolerance && math.Abs(endR-s.Radius) < surfaceTolerance {
		startAngle := math.Atan2(sy, sx)
		diff := math.Atan2(ey, ex) - startAngle
		if diff > math.Pi {
			diff -= 2 * math.Pi
		}
		if diff < -math.Pi {
			diff += 2 * math.Pi
		}
		angle := startAngle + diff*progress
		r := s.Radius + (startR-s.Radius)*(1-progress) + (endR-s.Radius)*progress
		return s.CenterX + math.Cos(angle)*r, s.CenterY + math.Sin(angle)*r
	}

	return p.StartX + (p.EndX-p.StartX)*progress, p.StartY + (p.EndY-p.StartY)*progress
}

// tailOf 计算尾部位置；起止点重合且无法回推时返回 false
func tailOf(p *components.Projectile) (x, y float64, ok bool) {
	if p.Progress > projectileTailStep {
		x, y = PositionAt(p, math.Max(0, p.Progress-projectileTailStep))
		return x, y, true
	}
	dx, dy := p.EndX-p.StartX, p.EndY-p.StartY
	distance := math.Hypot(dx, dy)
	if distance == 0 {
		return 0, 0, false
	}
	return p.CurrentX - dx/distance*p.Length, p.CurrentY - dy/distance*p.Length, true
}
