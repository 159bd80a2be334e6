package game

import (
	"fmt"
	"log"

	"github.com/gonewx/battlefx/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 观察器的持久化设置
// 注意：这些设置是全局的，不绑定到特定战斗
type ViewerSettings struct {
	// 场景设置
	ThemeIndex int  `yaml:"themeIndex"` // 行星主题索引
	ShowAxes   bool `yaml:"showAxes"`   // 是否绘制参考坐标轴

	// 后期效果
	Nebula   bool `yaml:"nebula"`   // 星云
	Grain    bool `yaml:"grain"`    // 胶片颗粒
	Vignette bool `yaml:"vignette"` // 暗角

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		ThemeIndex: 0,
		ShowAxes:   true,
		Nebula:     true,
		Grain:      true,
		Vignette:   true,
		Fullscreen: false,
	}
}

// Effects 返回后期效果开关
func (s *ViewerSettings) Effects() config.EffectsConfig {
	return config.EffectsConfig{Nebula: s.Nebula, Grain: s.Grain, Vignette: s.Vignette}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误：记录警告并使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置。
// 存档中缺失的字段保留默认值。
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if loaded.ThemeIndex < 0 {
		loaded.ThemeIndex = 0
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully (theme %d)", loaded.ThemeIndex)
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置（同一实例）
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetThemeIndex 设置主题索引，负数被限制为 0
//
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetThemeIndex(index int) {
	if index < 0 {
		index = 0
	}
	sm.settings.ThemeIndex = index
}

// SetEffects 设置后期效果开关
func (sm *SettingsManager) SetEffects(effects config.EffectsConfig) {
	sm.settings.Nebula = effects.Nebula
	sm.settings.Grain = effects.Grain
	sm.settings.Vignette = effects.Vignette
}

// SetShowAxes 设置是否绘制参考坐标轴
func (sm *SettingsManager) SetShowAxes(show bool) {
	sm.settings.ShowAxes = show
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}
