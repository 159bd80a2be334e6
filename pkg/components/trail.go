package components

import "github.com/gonewx/battlefx/internal/colorutil"

// TrailPoint 推进器拖尾上的一个采样点
type TrailPoint struct {
	X, Y      float64
	Timestamp float64 // 毫秒
	Alpha     float64
}

// Trail 单个实体的拖尾，点按时间从旧到新排列
type Trail struct {
	Points []TrailPoint
	Color  colorutil.Color
}
