// Package app 提供观察器应用的核心包装器
//
// 该包把场景配置、持久化设置和战斗场景组装成一个 ebiten.Game。
// cmd/battleviewer 和根目录的 main.go 都通过 NewApp() 使用它。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/battlefx/pkg/config"
	"github.com/gonewx/battlefx/pkg/game"
	"github.com/gonewx/battlefx/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// gdataAppName 设置存储使用的应用名
const gdataAppName = "battlefx"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Debug 打开场景调试信息
	Debug bool
	// SceneConfigPath 场景 YAML 路径，为空则使用内嵌默认配置
	SceneConfigPath string
	// ThemeIndex 启动主题，小于 0 时使用已保存的设置
	ThemeIndex int
	// Simulation 产生每帧快照的外部模拟层
	Simulation scenes.Simulation
	// DisablePersistence 不打开 gdata 存储（仅内存设置）
	DisablePersistence bool
}

// App 是观察器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scene        *scenes.BattleScene
	settings     *game.SettingsManager
	sceneConfig  *config.SceneConfig
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化观察器应用
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	sceneConfig := config.DefaultSceneConfig()
	if cfg.SceneConfigPath != "" {
		loaded, err := config.LoadSceneConfig(cfg.SceneConfigPath)
		if err != nil {
			return nil, fmt.Errorf("场景配置加载失败: %w", err)
		}
		sceneConfig = loaded
		log.Printf("[App] Loaded scene config: %s", cfg.SceneConfigPath)
	}

	var gdataManager *gdata.Manager
	if !cfg.DisablePersistence {
		m, err := gdata.Open(gdata.Config{AppName: gdataAppName})
		if err != nil {
			log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		} else {
			gdataManager = m
		}
	}
	settingsManager := game.NewSettingsManager(gdataManager)
	settings := settingsManager.GetSettings()

	themeIndex := settings.ThemeIndex
	if cfg.ThemeIndex >= 0 {
		themeIndex = cfg.ThemeIndex
		settingsManager.SetThemeIndex(themeIndex)
	}

	scene := scenes.NewBattleScene(scenes.BattleSceneOptions{
		Config:     sceneConfig,
		Simulation: cfg.Simulation,
		ThemeIndex: themeIndex,
		Debug:      cfg.Debug,
	})
	scene.SetEffects(mergeEffects(sceneConfig.Effects, settings.Effects()))

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	if settings.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] Started with theme %d (%s)", themeIndex, sceneConfig.Themes.GetPlanetTheme(themeIndex).Name)

	return &App{
		sceneManager: sceneManager,
		scene:        scene,
		settings:     settingsManager,
		sceneConfig:  sceneConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// mergeEffects 配置文件可以全局关闭效果，用户设置只能在允许范围内开关
func mergeEffects(base, user config.EffectsConfig) config.EffectsConfig {
	return config.EffectsConfig{
		Nebula:   base.Nebula && user.Nebula,
		Grain:    base.Grain && user.Grain,
		Vignette: base.Vignette && user.Vignette,
	}
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.WindowWidth, config.WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	a.handleKeys()

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// handleKeys 处理全局快捷键
//
//	F11          切换全屏
//	T / Shift+T  下一个 / 上一个主题
//	N / G / V    切换星云 / 颗粒 / 暗角
//	X            切换坐标轴
//	R            重置爆炸追踪
func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		step := 1
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			step = -1
		}
		a.StepTheme(step)
	}

	effects := a.scene.Effects()
	changed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		effects.Nebula = !effects.Nebula
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		effects.Grain = !effects.Grain
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		effects.Vignette = !effects.Vignette
		changed = true
	}
	if changed {
		a.SetEffects(effects)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		s := a.settings.GetSettings()
		a.settings.SetShowAxes(!s.ShowAxes)
		log.Printf("[App] Show axes: %v", s.ShowAxes)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.scene.ResetExplosionTracking()
	}
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.settings.SetFullscreen(true)
}

// StepTheme 按 step 切换主题并写入设置
func (a *App) StepTheme(step int) {
	n := a.sceneConfig.Themes.Len()
	next := (a.scene.ThemeIndex() + step) % n
	if next < 0 {
		next += n
	}
	a.scene.SetThemeIndex(next)
	a.settings.SetThemeIndex(next)
}

// SetEffects 更新后期效果并写入设置
func (a *App) SetEffects(effects config.EffectsConfig) {
	a.scene.SetEffects(effects)
	a.settings.SetEffects(effects)
	log.Printf("[App] Effects: nebula=%v grain=%v vignette=%v", effects.Nebula, effects.Grain, effects.Vignette)
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑尺寸跟随窗口尺寸，场景在尺寸变化时重建星空与噪声
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return config.WindowWidth, config.WindowHeight
	}
	a.scene.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Shutdown 保存设置并释放场景资源（窗口关闭后调用）
func (a *App) Shutdown() error {
	if err := a.settings.Save(); err != nil {
		return fmt.Errorf("保存设置失败: %w", err)
	}
	if closer, ok := a.sceneManager.GetCurrentScene().(game.Closer); ok {
		closer.Close()
	}
	log.Printf("[App] Shutdown complete")
	return nil
}

// Scene 返回战斗场景（模拟层可以通过它发送事件）
func (a *App) Scene() *scenes.BattleScene {
	return a.scene
}

// SceneConfig 返回生效的场景配置
func (a *App) SceneConfig() *config.SceneConfig {
	return a.sceneConfig
}

// Settings 返回设置管理器
func (a *App) Settings() *game.SettingsManager {
	return a.settings
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
