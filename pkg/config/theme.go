package config

import (
	"fmt"

	"github.com/gonewx/battlefx/internal/colorutil"
)

// PlanetTheme 行星主题
//
// 颜色保持文本形式（rgb()/rgba()），与模拟层交换的格式一致。
type PlanetTheme struct {
	Name       string `yaml:"name"`
	Planet     string `yaml:"planet"`
	Background string `yaml:"background"`
	Rings      string `yaml:"rings"`
}

// ThemeTable is the ordered, non-empty list of themes.
type ThemeTable []PlanetTheme

// GetPlanetTheme 按索引获取主题，索引对表长取模（负数同样回绕），永不失败
func (t ThemeTable) GetPlanetTheme(index int) PlanetTheme {
	if len(t) == 0 {
		return fallbackTheme
	}
	i := index % len(t)
	if i < 0 {
		i += len(t)
	}
	return t[i]
}

// Len 返回主题数量
func (t ThemeTable) Len() int {
	return len(t)
}

// fallbackTheme is only reached with an empty table, which Validate rejects.
var fallbackTheme = PlanetTheme{
	Name:       "Ganymede",
	Planet:     "rgba(120, 140, 160, 1)",
	Background: "rgb(8, 10, 12)",
	Rings:      "rgba(140, 160, 180, 1)",
}

// Validate 检查主题中所有颜色是否可解析
func (p PlanetTheme) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("theme name is empty")
	}
	for field, value := range map[string]string{
		"planet":     p.Planet,
		"background": p.Background,
		"rings":      p.Rings,
	} {
		if _, err := colorutil.Parse(value); err != nil {
			return fmt.Errorf("theme %q %s: %w", p.Name, field, err)
		}
	}
	return nil
}
