package scenes

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// frameStats 最近一帧的统计（调试用）
type frameStats struct {
	deltaTime   float64
	ships       int
	enemies     int
	projectiles int
	particles   int
	stars       int
}

// drawDebugOverlay 在左上角输出帧统计
func (s *BattleScene) drawDebugOverlay(screen *ebiten.Image) {
	theme := s.cfg.Themes.GetPlanetTheme(s.themeIndex)
	lines := []string{
		fmt.Sprintf("FPS %.1f  TPS %.1f  dt %.1fms", ebiten.ActualFPS(), ebiten.ActualTPS(), s.stats.deltaTime*1000),
		fmt.Sprintf("theme %d: %s  rotY %.2f", s.themeIndex, theme.Name, s.rotationY),
		fmt.Sprintf("ships %d  enemies %d  trails %d", s.stats.ships, s.stats.enemies, s.trails.Len()),
		fmt.Sprintf("projectiles %d  particles %d  stars %d", s.stats.projectiles, s.stats.particles, s.stats.stars),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, 10+i*16)
	}
}
