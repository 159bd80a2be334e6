package components

import (
	"fmt"
	"log"

	"github.com/gonewx/battlefx/internal/colorutil"
)

// FrameSnapshot 模拟层每帧交给渲染器的状态快照
//
// 坐标以画布中心为原点。颜色为 rgb()/rgba() 文本，在进入渲染器时解析一次。
type FrameSnapshot struct {
	SurfaceID  string           // 目标绘制表面标识
	Planet     PlanetSnapshot   // 行星
	Ships      []EntitySnapshot // 我方舰船
	Enemies    []EntitySnapshot // 敌人
	Axes       *AxisSet         // 参考坐标轴，nil 表示不绘制
	OrbitRadii []float64        // 可选轨道半径
	RotationY  *float64         // 行星环偏航角，nil 表示沿用上一帧
	ThemeIndex *int             // 主题索引，nil 表示沿用上一帧
}

// PlanetSnapshot 行星位置与半径
type PlanetSnapshot struct {
	X, Y   float64
	Radius float64
}

// EntitySnapshot 舰船或敌人的每帧状态
//
// 半径隐式为 5。比例字段缺失时按 1 处理，读取时限制在 [0,1]。
type EntitySnapshot struct {
	ID    string // 可选，缺失时按索引生成
	X, Y  float64
	Color string

	AttackRange         *float64 // 舰船攻击范围（可选）
	AttackIntervalRatio *float64 // 舰船攻击冷却比例（可选）
	HPRatio             *float64 // 敌人血量比例（可选）
}

// defaultEntityColor is used when a snapshot carries an unparsable color.
var defaultEntityColor = colorutil.RGB(128, 128, 128)

// EntityID 返回实体标识，缺失时使用 "<prefix>_<index>"
func (e EntitySnapshot) EntityID(prefix string, index int) string {
	if e.ID != "" {
		return e.ID
	}
	return fmt.Sprintf("%s_%d", prefix, index)
}

// HP 返回限制在 [0,1] 的血量比例，缺失时为 1
func (e EntitySnapshot) HP() float64 {
	return ratioOrOne(e.HPRatio)
}

// AttackRatio 返回攻击进度 1 - clamp(AttackIntervalRatio)，缺失时为 0
func (e EntitySnapshot) AttackRatio() float64 {
	return 1 - ratioOrOne(e.AttackIntervalRatio)
}

// ParsedColor 解析实体颜色，非法颜色回退为中性灰
func (e EntitySnapshot) ParsedColor() colorutil.Color {
	c, err := colorutil.Parse(e.Color)
	if err != nil {
		log.Printf("[Snapshot] Warning: entity %q has invalid color: %v", e.ID, err)
		return defaultEntityColor
	}
	return c
}

// Float 返回指向 v 的指针，便于构造可选字段
func Float(v float64) *float64 {
	return &v
}

// Int 返回指向 v 的指针
func Int(v int) *int {
	return &v
}

func ratioOrOne(v *float64) float64 {
	if v == nil {
		return 1
	}
	return colorutil.Clamp01(*v)
}
