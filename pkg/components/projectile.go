package components

// ProjectileOutcome 弹道结果标志
type ProjectileOutcome struct {
	IsHit         bool
	IsCritical    bool
	IsInstantKill bool
}

// ReferenceSphere 弹道曲线参考球（通常为行星）
type ReferenceSphere struct {
	CenterX, CenterY float64
	Radius           float64
}

// Projectile 飞行中的弹道
//
// 参考球在发射时捕获，飞行过程中不随行星变化。
type Projectile struct {
	StartX, StartY     float64
	EndX, EndY         float64
	CurrentX, CurrentY float64

	Progress float64 // 飞行进度 [0,1]
	Age      float64 // 已飞行时间（秒）
	Lifetime float64 // 最长飞行时间（秒）
	Speed    float64 // 速度（像素/秒）
	Length   float64 // 弹道尾迹长度

	Outcome ProjectileOutcome
	Sphere  ReferenceSphere
}
