// Package demo 提供一个小型轨道战斗模拟，作为渲染器的外部调用方
//
// 舰船绕行星公转并周期性开火，敌人在外圈漂移，被击中时掉血，
// 死亡后短暂停留再以新 id 重生。战斗规则只为驱动画面，不追求平衡。
package demo

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/battlefx/pkg/components"
	"github.com/gonewx/battlefx/pkg/config"
	"github.com/gonewx/battlefx/pkg/scenes"
)

// 模拟参数
const (
	PlanetRadius      = 70.0
	ShipCount         = 4
	EnemyCount        = 6
	shipOrbitBase     = 120.0
	shipOrbitStep     = 25.0
	shipAttackRange   = 60.0
	enemyOrbitBase    = 200.0
	enemyOrbitJitter  = 60.0
	enemyRespawnDelay = 1.5  // 秒
	rotationSpeed     = 0.15 // 弧度/秒
	surfaceShotPeriod = 2.5  // 秒
	hitChance         = 0.8
	critChance        = 0.15
	instantKillChance = 0.03
)

var shipPalette = []string{
	"rgb(100, 150, 255)",
	"rgb(80, 220, 200)",
	"rgb(170, 130, 255)",
	"rgb(120, 200, 120)",
}

var enemyPalette = []string{
	"rgb(220, 70, 60)",
	"rgb(230, 140, 50)",
	"rgb(200, 60, 140)",
}

type ship struct {
	orbit, angle, speed float64
	color               string
	interval, cooldown  float64 // 攻击间隔与剩余冷却（秒）
}

type enemy struct {
	id                  string
	orbit, angle, speed float64
	color               string
	hp                  float64
	deadFor             float64 // 死亡后经过的时间，存活时为 0
}

// Simulation 轨道战斗模拟，实现 scenes.Simulation
type Simulation struct {
	rng       *rand.Rand
	ships     []*ship
	enemies   []*enemy
	nextEnemy int
	rotation  float64
	elapsed   float64
	surfaceIn float64

	// ShowAxes 返回是否在快照中附带坐标轴，nil 表示总是附带
	ShowAxes func() bool
	// Size 返回表面尺寸，用于构造坐标轴；nil 时使用窗口默认尺寸
	Size func() (int, int)

	shots int
	kills int
}

// NewSimulation 创建模拟，rng 为 nil 时使用随机种子
func NewSimulation(rng *rand.Rand) *Simulation {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	s := &Simulation{rng: rng, surfaceIn: surfaceShotPeriod}

	for i := 0; i < ShipCount; i++ {
		interval := 0.8 + rng.Float64()*1.2
		s.ships = append(s.ships, &ship{
			orbit:    shipOrbitBase + float64(i)*shipOrbitStep,
			angle:    float64(i) / ShipCount * 2 * math.Pi,
			speed:    0.6 - float64(i)*0.1,
			color:    shipPalette[i%len(shipPalette)],
			interval: interval,
			cooldown: rng.Float64() * interval,
		})
	}
	for i := 0; i < EnemyCount; i++ {
		s.enemies = append(s.enemies, s.spawnEnemy())
	}
	log.Printf("[Demo] Simulation started: %d ships, %d enemies", len(s.ships), len(s.enemies))
	return s
}

func (s *Simulation) spawnEnemy() *enemy {
	e := &enemy{
		id:    fmt.Sprintf("enemy_%d", s.nextEnemy),
		orbit: enemyOrbitBase + s.rng.Float64()*enemyOrbitJitter,
		angle: s.rng.Float64() * 2 * math.Pi,
		speed: -(0.1 + s.rng.Float64()*0.2),
		color: enemyPalette[s.nextEnemy%len(enemyPalette)],
		hp:    1,
	}
	s.nextEnemy++
	return e
}

// Step 推进 deltaTime 秒，通过 events 发射弹道，返回下一帧快照
func (s *Simulation) Step(deltaTime float64, events scenes.BattleEvents) components.FrameSnapshot {
	s.elapsed += deltaTime
	s.rotation = math.Mod(s.rotation+rotationSpeed*deltaTime, 2*math.Pi)

	for _, e := range s.enemies {
		e.angle += e.speed * deltaTime
		if e.hp <= 0 {
			e.deadFor += deltaTime
		}
	}
	s.respawnEnemies()

	for _, sh := range s.ships {
		sh.angle += sh.speed * deltaTime
		sh.cooldown -= deltaTime
		if sh.cooldown <= 0 {
			sh.cooldown += sh.interval
			s.shipAttack(sh, events)
		}
	}

	s.surfaceIn -= deltaTime
	if s.surfaceIn <= 0 {
		s.surfaceIn += surfaceShotPeriod
		s.surfaceShot(events)
	}

	return s.snapshot()
}

// respawnEnemies 死亡足够久的敌人以新 id 重生
func (s *Simulation) respawnEnemies() {
	for i, e := range s.enemies {
		if e.hp <= 0 && e.deadFor >= enemyRespawnDelay {
			s.enemies[i] = s.spawnEnemy()
		}
	}
}

func (s *Simulation) shipAttack(sh *ship, events scenes.BattleEvents) {
	target := s.nearestLiving(sh)
	if target == nil {
		return
	}
	sx, sy := polar(sh.orbit, sh.angle)
	ex, ey := polar(target.orbit, target.angle)

	roll := s.rng.Float64()
	isInstantKill := roll < instantKillChance
	isCritical := !isInstantKill && roll < instantKillChance+critChance
	isHit := isInstantKill || s.rng.Float64() < hitChance

	if isHit {
		damage := 0.2 + s.rng.Float64()*0.15
		if isCritical {
			damage *= 2
		}
		if isInstantKill {
			damage = target.hp
		}
		target.hp = math.Max(0, target.hp-damage)
		if target.hp == 0 {
			s.kills++
		}
	} else {
		// 未命中时偏离目标
		ex += (s.rng.Float64() - 0.5) * 40
		ey += (s.rng.Float64() - 0.5) * 40
	}

	s.shots++
	if events != nil {
		events.FireProjectile(sx, sy, ex, ey, isHit, isCritical, isInstantKill)
	}
}

// surfaceShot 沿行星表面的弹道（两端都在球面上，走曲线）
func (s *Simulation) surfaceShot(events scenes.BattleEvents) {
	a := s.rng.Float64() * 2 * math.Pi
	b := a + (0.5+s.rng.Float64())*math.Pi/2
	sx, sy := polar(PlanetRadius, a)
	ex, ey := polar(PlanetRadius, b)
	s.shots++
	if events != nil {
		events.FireProjectile(sx, sy, ex, ey, true, false, false)
	}
}

func (s *Simulation) nearestLiving(sh *ship) *enemy {
	sx, sy := polar(sh.orbit, sh.angle)
	var best *enemy
	bestDist := math.Inf(1)
	for _, e := range s.enemies {
		if e.hp <= 0 {
			continue
		}
		ex, ey := polar(e.orbit, e.angle)
		if d := math.Hypot(ex-sx, ey-sy); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

func (s *Simulation) snapshot() components.FrameSnapshot {
	frame := components.FrameSnapshot{
		SurfaceID: config.DefaultSurfaceID,
		Planet:    components.PlanetSnapshot{Radius: PlanetRadius},
		RotationY: components.Float(s.rotation),
	}

	for i, sh := range s.ships {
		x, y := polar(sh.orbit, sh.angle)
		frame.Ships = append(frame.Ships, components.EntitySnapshot{
			ID:                  fmt.Sprintf("ship_%d", i),
			X:                   x,
			Y:                   y,
			Color:               sh.color,
			AttackRange:         components.Float(shipAttackRange),
			AttackIntervalRatio: components.Float(math.Max(0, sh.cooldown) / sh.interval),
		})
		frame.OrbitRadii = append(frame.OrbitRadii, sh.orbit)
	}

	for _, e := range s.enemies {
		x, y := polar(e.orbit, e.angle)
		frame.Enemies = append(frame.Enemies, components.EntitySnapshot{
			ID:      e.id,
			X:       x,
			Y:       y,
			Color:   e.color,
			HPRatio: components.Float(e.hp),
		})
	}

	if s.ShowAxes == nil || s.ShowAxes() {
		w, h := config.WindowWidth, config.WindowHeight
		if s.Size != nil {
			if sw, sh := s.Size(); sw > 0 && sh > 0 {
				w, h = sw, sh
			}
		}
		frame.Axes = components.DefaultAxes(float64(w), float64(h))
	}
	return frame
}

// Stats 返回累计射击数和击杀数
func (s *Simulation) Stats() (shots, kills int) {
	return s.shots, s.kills
}

// Elapsed 返回模拟时间（秒）
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

func polar(r, angle float64) (x, y float64) {
	return math.Cos(angle) * r, math.Sin(angle) * r
}
