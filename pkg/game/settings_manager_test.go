package game

import (
	"os"
	"testing"

	"github.com/gonewx/battlefx/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下打开 gdata 管理器
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}

	if settings.ThemeIndex != 0 {
		t.Errorf("ThemeIndex: got %d, want 0", settings.ThemeIndex)
	}
	if !settings.ShowAxes {
		t.Error("ShowAxes: got false, want true")
	}
	if effects := settings.Effects(); !effects.Nebula || !effects.Grain || !effects.Vignette {
		t.Errorf("Effects: got %+v, want all enabled", effects)
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestNewSettingsManager 测试正常初始化 SettingsManager
func TestNewSettingsManager(t *testing.T) {
	sm := NewSettingsManager(openTestGdata(t, "test_battlefx_settings"))
	if sm == nil {
		t.Fatal("NewSettingsManager() returned nil")
	}

	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil after initialization")
	}
	if settings.ThemeIndex != 0 || !settings.Grain {
		t.Errorf("Initial settings: got %+v, want defaults", settings)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm == nil {
		t.Fatal("NewSettingsManager(nil) returned nil")
	}
	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	manager := openTestGdata(t, "test_battlefx_load_save")

	sm1 := NewSettingsManager(manager)
	sm1.SetThemeIndex(3)
	sm1.SetShowAxes(false)
	sm1.SetEffects(config.EffectsConfig{Nebula: false, Grain: true, Vignette: false})
	sm1.SetFullscreen(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(manager)
	settings := sm2.GetSettings()

	if settings.ThemeIndex != 3 {
		t.Errorf("Loaded ThemeIndex: got %d, want 3", settings.ThemeIndex)
	}
	if settings.ShowAxes {
		t.Error("Loaded ShowAxes: got true, want false")
	}
	want := config.EffectsConfig{Nebula: false, Grain: true, Vignette: false}
	if got := settings.Effects(); got != want {
		t.Errorf("Loaded Effects: got %+v, want %+v", got, want)
	}
	if !settings.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
}

// TestSettingsPartialYAML 存档缺失的字段保留默认值
func TestSettingsPartialYAML(t *testing.T) {
	manager := openTestGdata(t, "test_battlefx_partial")
	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("themeIndex: 2\n")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	settings := NewSettingsManager(manager).GetSettings()
	if settings.ThemeIndex != 2 {
		t.Errorf("ThemeIndex: got %d, want 2", settings.ThemeIndex)
	}
	if !settings.ShowAxes || !settings.Nebula || !settings.Grain || !settings.Vignette {
		t.Errorf("missing fields should keep defaults, got %+v", settings)
	}
}

// TestSettingsCorruptYAML 损坏的存档回退为默认设置
func TestSettingsCorruptYAML(t *testing.T) {
	manager := openTestGdata(t, "test_battlefx_corrupt")
	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("themeIndex: [oops")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm := NewSettingsManager(manager)
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the unmarshal error")
	}
	if sm.GetSettings().ThemeIndex != 0 {
		t.Errorf("corrupt settings should fall back to defaults, got %+v", sm.GetSettings())
	}
}

func TestSetThemeIndexClamp(t *testing.T) {
	sm := NewSettingsManager(nil)

	tests := []struct {
		input    int
		expected int
	}{
		{0, 0},
		{4, 4},
		{12, 12}, // 超出主题表时由查找取模
		{-1, 0},
	}

	for _, tt := range tests {
		sm.SetThemeIndex(tt.input)
		if got := sm.GetSettings().ThemeIndex; got != tt.expected {
			t.Errorf("SetThemeIndex(%d): got %d, want %d", tt.input, got, tt.expected)
		}
	}
}

// TestGetSettings 测试 GetSettings() 返回同一实例
func TestGetSettings(t *testing.T) {
	sm := NewSettingsManager(nil)

	settings1 := sm.GetSettings()
	settings2 := sm.GetSettings()
	if settings1 != settings2 {
		t.Error("GetSettings() should return the same instance")
	}

	settings1.ThemeIndex = 2
	if settings2.ThemeIndex != 2 {
		t.Error("Settings should be the same instance")
	}
}

// TestLoadNilGdataManager 测试降级模式下 Load() 恢复默认设置
func TestLoadNilGdataManager(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetThemeIndex(4)

	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.GetSettings().ThemeIndex != 0 {
		t.Errorf("After Load() in degraded mode, ThemeIndex: got %d, want 0", sm.GetSettings().ThemeIndex)
	}
}
