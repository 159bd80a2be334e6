package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gonewx/battlefx/pkg/config"
)

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	cfg.Verbose = true
	cfg.DisablePersistence = true
	a, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	return a
}

func TestNewApp_Defaults(t *testing.T) {
	a := newTestApp(t, Config{ThemeIndex: -1})

	if a.Scene() == nil {
		t.Fatal("Scene() returned nil")
	}
	if a.GetSceneManager().GetCurrentScene() == nil {
		t.Fatal("battle scene should be the active scene")
	}
	if a.Scene().ThemeIndex() != 0 {
		t.Errorf("theme index: got %d, want 0 from default settings", a.Scene().ThemeIndex())
	}
	if !a.IsVerbose() {
		t.Error("IsVerbose: got false, want true")
	}
}

// TestNewApp_ThemeOverride 命令行主题覆盖已保存的设置
func TestNewApp_ThemeOverride(t *testing.T) {
	a := newTestApp(t, Config{ThemeIndex: 2})
	if a.Scene().ThemeIndex() != 2 {
		t.Errorf("theme index: got %d, want 2", a.Scene().ThemeIndex())
	}
	if a.Settings().GetSettings().ThemeIndex != 2 {
		t.Errorf("settings theme index: got %d, want 2", a.Settings().GetSettings().ThemeIndex)
	}
}

func TestNewApp_BadSceneConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("themes: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewApp(Config{Verbose: true, DisablePersistence: true, SceneConfigPath: path}); err == nil {
		t.Error("NewApp should fail on a malformed scene config")
	}
}

// TestApp_StepTheme 主题循环切换
func TestApp_StepTheme(t *testing.T) {
	a := newTestApp(t, Config{ThemeIndex: 0})
	n := config.DefaultSceneConfig().Themes.Len()

	a.StepTheme(-1)
	if got := a.Scene().ThemeIndex(); got != n-1 {
		t.Errorf("previous theme from 0: got %d, want %d", got, n-1)
	}
	a.StepTheme(1)
	if got := a.Scene().ThemeIndex(); got != 0 {
		t.Errorf("next theme wraps to 0: got %d", got)
	}
	if a.Settings().GetSettings().ThemeIndex != 0 {
		t.Error("theme change should be written to settings")
	}
}

func TestApp_Layout(t *testing.T) {
	a := newTestApp(t, Config{ThemeIndex: -1})

	w, h := a.Layout(0, 0)
	if w != config.WindowWidth || h != config.WindowHeight {
		t.Errorf("Layout(0,0) = %dx%d, want window defaults", w, h)
	}

	w, h = a.Layout(300, 200)
	if w != 300 || h != 200 {
		t.Errorf("Layout(300,200) = %dx%d", w, h)
	}
	if sw, sh := a.Scene().Size(); sw != 300 || sh != 200 {
		t.Errorf("scene size after Layout: got %dx%d, want 300x200", sw, sh)
	}
}

func TestApp_SetEffects(t *testing.T) {
	a := newTestApp(t, Config{ThemeIndex: -1})
	effects := config.EffectsConfig{Nebula: true}
	a.SetEffects(effects)

	if got := a.Scene().Effects(); got != effects {
		t.Errorf("scene effects: got %+v, want %+v", got, effects)
	}
	if got := a.Settings().GetSettings().Effects(); got != effects {
		t.Errorf("settings effects: got %+v, want %+v", got, effects)
	}
}

func TestMergeEffects(t *testing.T) {
	base := config.EffectsConfig{Nebula: true, Grain: false, Vignette: true}
	user := config.EffectsConfig{Nebula: false, Grain: true, Vignette: true}
	got := mergeEffects(base, user)
	want := config.EffectsConfig{Vignette: true}
	if got != want {
		t.Errorf("mergeEffects: got %+v, want %+v", got, want)
	}
}

func TestApp_Shutdown(t *testing.T) {
	a := newTestApp(t, Config{ThemeIndex: -1})
	if err := a.Shutdown(); err != nil {
		t.Errorf("Shutdown() in memory-only mode: %v", err)
	}
}
