package systems

import (
	"log"
	"math"
	"math/rand"
	"sort"

	"github.com/gonewx/battlefx/internal/colorutil"
	"github.com/gonewx/battlefx/pkg/components"
	"github.com/gonewx/battlefx/pkg/utils"
)

// 爆炸粒子参数
const (
	ExplosionParticleCount = 8    // 每次爆炸的粒子数
	ExplosionBaseSpeed     = 100  // 基础速度（像素/秒）
	ExplosionSpeedJitter   = 40   // 速度抖动范围（±20）
	ExplosionLifetime      = 1.0  // 粒子寿命（秒）
	ExplosionMinSize       = 2.0  // 最小尺寸
	ExplosionSizeRange     = 2.0  // 尺寸随机范围
	particleDecelPerFrame  = 0.95 // 每 1/60 秒的速度保留比例
	particleShrink         = 0.7  // 寿命结束时尺寸缩减比例
	particleMinSize        = 0.3  // 小于该尺寸即移除
	particleMinAlpha       = 0.01 // 低于该透明度不绘制
	particleGlowMax        = 4.0  // 光晕上限

	// MaxParticles 超过该数量时只保留最年轻的 ParticleKeepCount 个
	MaxParticles      = 100
	ParticleKeepCount = 50
)

// ParticleSystem 管理爆炸粒子
//
// 粒子集合只由本系统持有；其他组件通过 SpawnExplosion 间接添加粒子。
type ParticleSystem struct {
	particles []components.Particle
	rng       *rand.Rand
}

// NewParticleSystem 创建粒子系统
//
// rng 为 nil 时使用随机种子；测试可注入固定种子的随机源。
func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &ParticleSystem{rng: rng}
}

// SpawnExplosion 在 (x,y) 生成一次径向爆炸
//
// 8 个粒子基础角度均匀分布，速度 100±20，尺寸 2~4，寿命 1 秒。
func (ps *ParticleSystem) SpawnExplosion(x, y float64, color colorutil.Color) {
	for i := 0; i < ExplosionParticleCount; i++ {
		angle := float64(i) / ExplosionParticleCount * 2 * math.Pi
		speed := ExplosionBaseSpeed + (ps.rng.Float64()-0.5)*ExplosionSpeedJitter
		size := ExplosionMinSize + ps.rng.Float64()*ExplosionSizeRange

		ps.particles = append(ps.particles, components.Particle{
			X:        x,
			Y:        y,
			VX:       math.Cos(angle) * speed,
			VY:       math.Sin(angle) * speed,
			Size:     size,
			MaxSize:  size,
			Color:    color,
			Lifetime: ExplosionLifetime,
		})
	}
}

// Update 推进所有粒子
//
// 粒子数超过上限时先裁剪到最年轻的 50 个，然后逐个：
//  1. 累加年龄，寿命比例 >= 1 时移除
//  2. 按速度积分位置，速度按 0.95^(dt*60) 衰减
//  3. 尺寸随寿命缩小，小于 0.3 时移除
func (ps *ParticleSystem) Update(dt float64) {
	if len(ps.particles) > MaxParticles {
		sort.SliceStable(ps.particles, func(i, j int) bool {
			return ps.particles[i].Age < ps.particles[j].Age
		})
		log.Printf("[ParticleSystem] Particle cap exceeded (%d), keeping %d youngest", len(ps.particles), ParticleKeepCount)
		ps.particles = ps.particles[:ParticleKeepCount]
	}

	decel := math.Pow(particleDecelPerFrame, dt*60)
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		p.Age += dt
		ratio := p.LifeRatio()
		if ratio >= 1 {
			continue
		}

		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VX *= decel
		p.VY *= decel

		p.Size = p.MaxSize * (1 - ratio*particleShrink)
		if p.Size < particleMinSize {
			continue
		}
		alive = append(alive, p)
	}
	ps.particles = alive
}

// Draw 绘制粒子：带光晕的圆点，透明度 1 - 寿命比例
func (ps *ParticleSystem) Draw(canvas *utils.Canvas) {
	for i := range ps.particles {
		p := &ps.particles[i]
		if p.Size <= 0 {
			continue
		}
		alpha := math.Max(0, 1-p.LifeRatio())
		if alpha < particleMinAlpha {
			continue
		}
		col := p.Color.WithAlpha(alpha)
		canvas.GlowCircle(p.X, p.Y, p.Size, math.Min(particleGlowMax, p.Size), col)
		canvas.FillCircle(p.X, p.Y, p.Size, col, noBlend)
	}
}

// Count 返回当前粒子数量
func (ps *ParticleSystem) Count() int {
	return len(ps.particles)
}

// Particles 返回粒子快照（副本）
func (ps *ParticleSystem) Particles() []components.Particle {
	out := make([]components.Particle, len(ps.particles))
	copy(out, ps.particles)
	return out
}

// Clear 移除所有粒子
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}
