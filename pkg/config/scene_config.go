package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/scene.yaml
var defaultSceneYAML []byte

// SceneConfig 战斗场景渲染配置
//
// 配置文件位置: pkg/config/defaults/scene.yaml（编译时内嵌）
// 可通过 --config 指定外部文件覆盖。
type SceneConfig struct {
	// Themes 行星主题表，按 ThemeIndex 取模选择
	Themes ThemeTable `yaml:"themes"`

	// StarCount 每个星空纪元生成的星星数量
	StarCount int `yaml:"starCount"`

	// ReferenceSphereRadius 没有行星时弹道曲线使用的参考球半径
	ReferenceSphereRadius float64 `yaml:"referenceSphereRadius"`

	// Effects 后期效果开关
	Effects EffectsConfig `yaml:"effects"`
}

// EffectsConfig 后期效果开关
type EffectsConfig struct {
	Nebula   bool `yaml:"nebula"`
	Grain    bool `yaml:"grain"`
	Vignette bool `yaml:"vignette"`
}

// DefaultSceneConfig 返回内嵌的默认配置
//
// 内嵌数据在构建时已确定，解析失败属于程序错误，直接 panic。
func DefaultSceneConfig() *SceneConfig {
	cfg, err := ParseSceneConfig(defaultSceneYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded scene config is invalid: %v", err))
	}
	return cfg
}

// LoadSceneConfig 从文件加载场景配置
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *SceneConfig: 加载并校验后的配置
//   - error: 读取、解析或校验失败
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// ParseSceneConfig 解析 YAML 数据
//
// 未出现在数据中的字段沿用零值；StarCount 和 ReferenceSphereRadius
// 为零时回退到默认值。
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	var config SceneConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	if config.StarCount == 0 {
		config.StarCount = DefaultStarCount
	}
	if config.ReferenceSphereRadius == 0 {
		config.ReferenceSphereRadius = DefaultReferenceSphereRadius
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return &config, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 主题表非空，且每个主题颜色合法
//   - 星星数量非负
//   - 参考球半径非负
func (c *SceneConfig) Validate() error {
	if len(c.Themes) == 0 {
		return fmt.Errorf("themes must not be empty")
	}
	for i, theme := range c.Themes {
		if err := theme.Validate(); err != nil {
			return fmt.Errorf("themes[%d]: %w", i, err)
		}
	}
	if c.StarCount < 0 {
		return fmt.Errorf("starCount must not be negative, got %d", c.StarCount)
	}
	if c.ReferenceSphereRadius < 0 {
		return fmt.Errorf("referenceSphereRadius must not be negative, got %.1f", c.ReferenceSphereRadius)
	}
	return nil
}
