package scenes

import (
	"log"
	"math/rand"

	"github.com/gonewx/battlefx/internal/colorutil"
	"github.com/gonewx/battlefx/pkg/components"
	"github.com/gonewx/battlefx/pkg/config"
	"github.com/gonewx/battlefx/pkg/game"
	"github.com/gonewx/battlefx/pkg/systems"
	"github.com/gonewx/battlefx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// orbitAlpha 轨道弧使用主题环色，透明度固定
const orbitAlpha = 0.3

// BattleEvents 模拟层向渲染器发送的事件
type BattleEvents interface {
	FireProjectile(startX, startY, endX, endY float64, isHit, isCritical, isInstantKill bool)
	SetThemeIndex(index int)
	ResetExplosionTracking()
}

// Simulation 外部模拟层：每个 tick 推进并返回下一帧快照
//
// events 用于在推进过程中发射弹道或切换主题。
type Simulation interface {
	Step(deltaTime float64, events BattleEvents) components.FrameSnapshot
}

// BattleSceneOptions 创建 BattleScene 的参数，零值字段使用默认值
type BattleSceneOptions struct {
	Config     *config.SceneConfig  // 默认 config.DefaultSceneConfig()
	Clock      game.Clock           // 默认 game.NewMonotonicClock()
	Surfaces   game.SurfaceProvider // 默认使用 Draw 绑定屏幕的内部注册表
	Simulation Simulation           // 可为 nil：只通过 DrawPositions 驱动
	Rand       *rand.Rand           // 星空/噪声随机源
	ThemeIndex int
	Debug      bool
}

// BattleScene 战斗场景合成器
//
// 每帧按固定顺序调用各子渲染器：
// 主题背景 → 星空/星云 → 坐标轴 → 行星（环、轨道）→ 舰船（拖尾、攻击范围、圆盘）
// → 存活敌人 → 死亡检测 → 弹道 → 粒子 → 颗粒与暗角。
//
// 场景只持有帧级状态（时间、主题、旋转角、表面尺寸），
// 粒子、弹道、拖尾和星空分别由各自的系统持有。
type BattleScene struct {
	cfg      *config.SceneConfig
	clock    game.Clock
	surfaces game.SurfaceProvider
	screens  *game.SurfaceRegistry
	sim      Simulation
	canvas   *utils.Canvas

	// 子渲染器
	background  *systems.SpaceBackgroundSystem
	planet      *systems.PlanetRenderSystem
	entities    *systems.EntityRenderSystem
	trails      *systems.TrailSystem
	projectiles *systems.ProjectileSystem
	particles   *systems.ParticleSystem
	deaths      *systems.DeathTracker

	// 帧级状态
	themeIndex    int
	rotationY     float64
	lastFrameMs   float64
	hasLastFrame  bool
	width, height int

	frame    components.FrameSnapshot
	hasFrame bool

	// Debug 打开每帧调试日志与屏幕调试信息
	Debug bool
	stats frameStats
}

// NewBattleScene 创建战斗场景
func NewBattleScene(opts BattleSceneOptions) *BattleScene {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultSceneConfig()
	}
	clock := opts.Clock
	if clock == nil {
		clock = game.NewMonotonicClock()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	screens := game.NewSurfaceRegistry()
	var surfaces game.SurfaceProvider = screens
	if opts.Surfaces != nil {
		surfaces = opts.Surfaces
	}

	particles := systems.NewParticleSystem(rng)
	projectiles := systems.NewProjectileSystem()
	projectiles.SetReferenceSphere(0, 0, cfg.ReferenceSphereRadius)

	s := &BattleScene{
		cfg:         cfg,
		clock:       clock,
		surfaces:    surfaces,
		screens:     screens,
		sim:         opts.Simulation,
		background:  systems.NewSpaceBackgroundSystem(cfg, rng),
		planet:      systems.NewPlanetRenderSystem(),
		entities:    systems.NewEntityRenderSystem(),
		trails:      systems.NewTrailSystem(),
		projectiles: projectiles,
		particles:   particles,
		deaths:      systems.NewDeathTracker(particles),
		themeIndex:  opts.ThemeIndex,
		Debug:       opts.Debug,
	}
	log.Printf("[BattleScene] Created (theme %d, %d themes, %d stars)", s.themeIndex, cfg.Themes.Len(), cfg.StarCount)
	return s
}

// Update 从模拟层取下一帧快照
func (s *BattleScene) Update(deltaTime float64) {
	if s.sim == nil {
		return
	}
	s.frame = s.sim.Step(deltaTime, s)
	s.hasFrame = true
}

// Draw 将屏幕绑定为快照指定的表面并合成一帧
func (s *BattleScene) Draw(screen *ebiten.Image) {
	if !s.hasFrame {
		return
	}
	id := surfaceIDOf(s.frame)
	s.screens.Bind(id, screen)
	s.DrawPositions(s.frame)
	if s.Debug {
		s.drawDebugOverlay(screen)
	}
}

// Close 释放噪声纹理等 GPU 资源
func (s *BattleScene) Close() {
	s.background.Invalidate()
	s.screens.Unbind(surfaceIDOf(s.frame))
}

// DrawPositions 合成一帧
//
// 表面不存在时记录警告并跳过整帧。deltaTime 每帧只从时钟计算一次，
// 时钟回退时按 0 处理。
func (s *BattleScene) DrawPositions(frame components.FrameSnapshot) {
	id := surfaceIDOf(frame)
	surface, ok := s.surfaces.Surface(id)
	if !ok || surface == nil {
		log.Printf("[BattleScene] Warning: surface %q not found, skipping frame", id)
		return
	}

	now := s.clock.NowMs()
	deltaTime := 0.0
	if s.hasLastFrame {
		deltaTime = max(0, (now-s.lastFrameMs)/1000)
	}
	s.lastFrameMs = now
	s.hasLastFrame = true

	b := surface.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		s.Resize(b.Dx(), b.Dy())
	}
	if frame.ThemeIndex != nil {
		s.SetThemeIndex(*frame.ThemeIndex)
	}
	if frame.RotationY != nil {
		s.rotationY = *frame.RotationY
	}
	theme := s.cfg.Themes.GetPlanetTheme(s.themeIndex)

	if s.canvas == nil {
		s.canvas = utils.NewCanvas(surface)
	} else {
		s.canvas.Reset(surface)
	}
	width, height := float64(b.Dx()), float64(b.Dy())

	// 1. 背景与星空
	s.background.DrawThemedBackground(s.canvas, theme)
	s.background.EnsureStars(width, height)
	s.background.DrawStars(s.canvas, now/1000)

	// 2. 坐标轴
	s.entities.DrawAxes(s.canvas, frame.Axes)

	// 3. 行星
	s.drawPlanet(frame, theme)

	// 4. 舰船与敌人
	s.drawShips(frame.Ships, now)
	s.drawEnemies(frame.Enemies)
	s.deaths.CheckDeaths(frame.Enemies)

	// 5. 瞬时效果
	s.projectiles.Update(deltaTime)
	s.projectiles.Draw(s.canvas)
	s.particles.Update(deltaTime)
	s.particles.Draw(s.canvas)

	// 6. 后期
	s.background.DrawGrainAndVignette(s.canvas)

	s.stats = frameStats{
		deltaTime:   deltaTime,
		ships:       len(frame.Ships),
		enemies:     len(frame.Enemies),
		projectiles: s.projectiles.Count(),
		particles:   s.particles.Count(),
		stars:       s.background.StarCount(),
	}
	if s.Debug {
		log.Printf("[BattleScene] frame dt=%.4f ships=%d enemies=%d projectiles=%d particles=%d",
			deltaTime, s.stats.ships, s.stats.enemies, s.stats.projectiles, s.stats.particles)
	}
}

func (s *BattleScene) drawPlanet(frame components.FrameSnapshot, theme config.PlanetTheme) {
	p := frame.Planet
	base := colorutil.ParseOr(theme.Planet, colorutil.White)
	rings := colorutil.ParseOr(theme.Rings, colorutil.White)

	radius := p.Radius
	if radius <= 0 {
		radius = s.cfg.ReferenceSphereRadius
	}
	s.projectiles.SetReferenceSphere(p.X, p.Y, radius)

	s.planet.DrawPlanet(s.canvas, p.X, p.Y, p.Radius, base, rings, s.rotationY)
	if len(frame.OrbitRadii) > 0 {
		s.planet.DrawOrbits(s.canvas, p.X, p.Y, frame.OrbitRadii, rings.WithAlpha(orbitAlpha))
	}
}

// drawShips 舰船按 拖尾 → 攻击范围 → 圆盘 的顺序绘制，并清理已消失舰船的拖尾
func (s *BattleScene) drawShips(ships []components.EntitySnapshot, nowMs float64) {
	active := make(map[string]bool, len(ships))
	for i, ship := range ships {
		id := ship.EntityID("ship", i)
		active[id] = true
		color := ship.ParsedColor()

		s.trails.UpdateTrail(id, ship.X, ship.Y, color, nowMs)
		s.trails.DrawTrail(s.canvas, id)

		if ship.AttackRange != nil {
			s.entities.DrawAttackRange(s.canvas, ship.X, ship.Y, *ship.AttackRange, ship.Color)
		}
		s.entities.DrawShip(s.canvas, ship.X, ship.Y, config.EntityRadius, color, ship.AttackRatio())
	}
	s.trails.Prune(active)
}

// drawEnemies 只绘制血量大于 0 的敌人
func (s *BattleScene) drawEnemies(enemies []components.EntitySnapshot) {
	for _, enemy := range enemies {
		hp := enemy.HP()
		if hp <= 0 {
			continue
		}
		s.entities.DrawEnemy(s.canvas, enemy.X, enemy.Y, config.EntityRadius, enemy.ParsedColor(), hp)
	}
}

// FireProjectile 发射一枚弹道
func (s *BattleScene) FireProjectile(startX, startY, endX, endY float64, isHit, isCritical, isInstantKill bool) {
	s.projectiles.Fire(startX, startY, endX, endY, isHit, isCritical, isInstantKill)
}

// SetThemeIndex 切换主题；索引变化时重新生成星空
func (s *BattleScene) SetThemeIndex(index int) {
	if index == s.themeIndex {
		return
	}
	s.themeIndex = index
	s.background.ResetStars()
	log.Printf("[BattleScene] Theme changed to %d (%s)", index, s.cfg.Themes.GetPlanetTheme(index).Name)
}

// ResetExplosionTracking 关卡/场景切换时清空死亡追踪
func (s *BattleScene) ResetExplosionTracking() {
	s.deaths.Reset()
}

// Resize 表面尺寸变化：星空与噪声纹理失效
func (s *BattleScene) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	log.Printf("[BattleScene] Surface resized %dx%d -> %dx%d", s.width, s.height, width, height)
	s.width, s.height = width, height
	s.background.Invalidate()
}

// SetEffects 更新后期效果开关
func (s *BattleScene) SetEffects(effects config.EffectsConfig) {
	s.background.SetEffects(effects)
}

// Effects 返回当前后期效果开关
func (s *BattleScene) Effects() config.EffectsConfig {
	return s.background.Effects()
}

// ThemeIndex 返回当前主题索引
func (s *BattleScene) ThemeIndex() int {
	return s.themeIndex
}

// Size 返回最近一帧的表面尺寸
func (s *BattleScene) Size() (width, height int) {
	return s.width, s.height
}

// ProjectileCount 返回飞行中的弹道数量
func (s *BattleScene) ProjectileCount() int {
	return s.projectiles.Count()
}

// ParticleCount 返回当前粒子数量
func (s *BattleScene) ParticleCount() int {
	return s.particles.Count()
}

// TrailCount 返回正在追踪拖尾的舰船数量
func (s *BattleScene) TrailCount() int {
	return s.trails.Len()
}

// StarsInitialized 返回本纪元星空是否已生成
func (s *BattleScene) StarsInitialized() bool {
	return s.background.Initialized()
}

func surfaceIDOf(frame components.FrameSnapshot) string {
	if frame.SurfaceID == "" {
		return config.DefaultSurfaceID
	}
	return frame.SurfaceID
}
