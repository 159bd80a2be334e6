package components

import "github.com/gonewx/battlefx/internal/colorutil"

// Particle 爆炸粒子
//
// 纯数据结构，由 ParticleSystem 负责更新与移除。
type Particle struct {
	X, Y   float64 // 位置（画布中心坐标）
	VX, VY float64 // 速度（像素/秒）

	Size    float64 // 当前尺寸
	MaxSize float64 // 初始尺寸
	Color   colorutil.Color

	Age      float64 // 已存活时间（秒）
	Lifetime float64 // 总寿命（秒）
}

// LifeRatio 返回 age/lifetime，寿命为 0 时视为已结束
func (p *Particle) LifeRatio() float64 {
	if p.Lifetime <= 0 {
		return 1
	}
	return p.Age / p.Lifetime
}
