package components

import "github.com/gonewx/battlefx/internal/colorutil"

// StarClass 星星类别
type StarClass int

const (
	StarNormal  StarClass = iota // 普通暗星（85%）
	StarBright                   // 亮星（5%）
	StarColored                  // 彩色星（10%）
)

// String 返回类别名称
func (c StarClass) String() string {
	switch c {
	case StarBright:
		return "bright"
	case StarColored:
		return "colored"
	default:
		return "normal"
	}
}

// Star 背景星星
type Star struct {
	X, Y         float64
	Size         float64
	Opacity      float64 // 基础不透明度
	TwinkleSpeed float64
	Phase        float64 // 闪烁初相
	Color        colorutil.Color
	Class        StarClass
}
