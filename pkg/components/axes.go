package components

import "math"

// AxisLine 一条坐标轴线段
type AxisLine struct {
	StartX, StartY float64
	EndX, EndY     float64
}

// AxisSet 三条参考坐标轴
type AxisSet struct {
	X, Y, Z AxisLine
}

// DefaultAxes 构造以画布中心为原点的默认坐标轴
//
// 长度为 min(w,h)/2*0.8；z 轴沿 π/4 对角线方向投影。
func DefaultAxes(width, height float64) *AxisSet {
	length := math.Min(width, height) / 2 * 0.8
	diag := length * math.Cos(math.Pi/4)
	return &AxisSet{
		X: AxisLine{StartX: -length, EndX: length},
		Y: AxisLine{StartY: -length, EndY: length},
		Z: AxisLine{StartX: -diag, StartY: diag, EndX: diag, EndY: -diag},
	}
}
