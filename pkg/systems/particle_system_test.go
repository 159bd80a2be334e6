package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/battlefx/internal/colorutil"
	"github.com/gonewx/battlefx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

func newTestParticleSystem() *ParticleSystem {
	return NewParticleSystem(rand.New(rand.NewSource(1)))
}

// TestParticleSystem_SpawnExplosion 一次爆炸生成 8 个粒子
func TestParticleSystem_SpawnExplosion(t *testing.T) {
	ps := newTestParticleSystem()
	red := colorutil.RGB(255, 0, 0)
	ps.SpawnExplosion(100, 200, red)

	particles := ps.Particles()
	if len(particles) != ExplosionParticleCount {
		t.Fatalf("particle count: got %d, want %d", len(particles), ExplosionParticleCount)
	}

	for i, p := range particles {
		if p.X != 100 || p.Y != 200 {
			t.Errorf("particle %d position: got (%v, %v), want (100, 200)", i, p.X, p.Y)
		}
		speed := math.Hypot(p.VX, p.VY)
		if speed < 80 || speed > 120 {
			t.Errorf("particle %d speed %v outside 100±20", i, speed)
		}
		if p.Size < 2 || p.Size > 4 || p.Size != p.MaxSize {
			t.Errorf("particle %d size %v (max %v), want 2~4", i, p.Size, p.MaxSize)
		}
		if p.Lifetime != 1.0 {
			t.Errorf("particle %d lifetime: got %v, want 1.0", i, p.Lifetime)
		}
		if p.Color != red {
			t.Errorf("particle %d color: got %+v", i, p.Color)
		}

		// 基础角度均匀分布
		wantAngle := float64(i) / ExplosionParticleCount * 2 * math.Pi
		gotAngle := math.Atan2(p.VY, p.VX)
		diff := math.Mod(gotAngle-wantAngle+4*math.Pi, 2*math.Pi)
		if diff > 1e-9 && 2*math.Pi-diff > 1e-9 {
			t.Errorf("particle %d angle: got %v, want %v", i, gotAngle, wantAngle)
		}
	}
}

// TestParticleSystem_ParticleLifecycle 超过寿命的粒子被移除
func TestParticleSystem_ParticleLifecycle(t *testing.T) {
	ps := newTestParticleSystem()
	ps.SpawnExplosion(0, 0, colorutil.White)

	ps.Update(0.5)
	if ps.Count() != ExplosionParticleCount {
		t.Fatalf("particles should survive 0.5s, got %d", ps.Count())
	}
	for _, p := range ps.Particles() {
		if p.Age != 0.5 {
			t.Errorf("age: got %v, want 0.5", p.Age)
		}
		want := p.MaxSize * (1 - 0.5*0.7)
		if math.Abs(p.Size-want) > 1e-9 {
			t.Errorf("size: got %v, want %v", p.Size, want)
		}
	}

	ps.Update(0.6)
	if ps.Count() != 0 {
		t.Errorf("particles should be removed after 1.1s, got %d", ps.Count())
	}
}

func TestParticleSystem_SingleLongStep(t *testing.T) {
	ps := newTestParticleSystem()
	ps.SpawnExplosion(0, 0, colorutil.White)
	ps.Update(1.1)
	if ps.Count() != 0 {
		t.Errorf("dt=1.1 should remove all particles, got %d", ps.Count())
	}
}

// TestParticleSystem_Deceleration 速度按 0.95^(dt*60) 衰减
func TestParticleSystem_Deceleration(t *testing.T) {
	ps := newTestParticleSystem()
	ps.SpawnExplosion(0, 0, colorutil.White)
	before := ps.Particles()

	dt := 1.0 / 60
	ps.Update(dt)
	after := ps.Particles()

	for i := range after {
		wantX := before[i].VX * dt
		if math.Abs(after[i].X-wantX) > 1e-9 {
			t.Errorf("particle %d x: got %v, want %v", i, after[i].X, wantX)
		}
		wantVX := before[i].VX * 0.95
		if math.Abs(after[i].VX-wantVX) > 1e-9 {
			t.Errorf("particle %d vx: got %v, want %v", i, after[i].VX, wantVX)
		}
	}
}

// TestParticleSystem_CapKeepsYoungest 超过 100 个时保留最年轻的 50 个
func TestParticleSystem_CapKeepsYoungest(t *testing.T) {
	ps := newTestParticleSystem()

	// 先生成 10 次爆炸并让它们老化
	for i := 0; i < 10; i++ {
		ps.SpawnExplosion(0, 0, colorutil.White)
	}
	ps.Update(0.3)
	// 再生成 72 个新粒子，总数 152
	for ps.Count() < 150 {
		ps.SpawnExplosion(10, 10, colorutil.White)
	}

	ps.Update(0.01)
	if ps.Count() > ParticleKeepCount {
		t.Fatalf("after cap: got %d particles, want <= %d", ps.Count(), ParticleKeepCount)
	}
	for _, p := range ps.Particles() {
		if p.Age > 0.02 {
			t.Errorf("old particle (age %v) survived the cap", p.Age)
		}
	}
}

func TestParticleSystem_Clear(t *testing.T) {
	ps := newTestParticleSystem()
	ps.SpawnExplosion(0, 0, colorutil.White)
	ps.Clear()
	if ps.Count() != 0 {
		t.Errorf("Clear: got %d particles", ps.Count())
	}
}

func TestParticleSystem_DrawSmoke(t *testing.T) {
	ps := newTestParticleSystem()
	ps.SpawnExplosion(0, 0, colorutil.RGBA(255, 100, 50, 0.8))
	ps.Update(0.1)
	ps.Draw(utils.NewCanvas(ebiten.NewImage(64, 64)))
}
