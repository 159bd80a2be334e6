package config

// 布局与渲染常量
// 坐标系约定：实体坐标以画布中心为原点，x 向右，y 向下

// Window Configuration (窗口配置)
const (
	// WindowWidth 默认窗口宽度
	WindowWidth = 960

	// WindowHeight 默认窗口高度
	WindowHeight = 720

	// WindowTitle 窗口标题
	WindowTitle = "Battle Scene"

	// DefaultSurfaceID 默认绘制表面标识，对应 ebiten 屏幕
	DefaultSurfaceID = "battleCanvas"
)

// Scene Defaults (场景默认值)
const (
	// DefaultStarCount 每个纪元生成的星星数量
	DefaultStarCount = 400

	// DefaultReferenceSphereRadius 弹道参考球默认半径
	DefaultReferenceSphereRadius = 70.0

	// EntityRadius 舰船与敌人圆盘的隐式半径
	EntityRadius = 5.0

	// TrailLifetimeMs 拖尾点寿命（毫秒）
	TrailLifetimeMs = 1000.0

	// EmptyFrameResetThreshold 连续空帧达到该值时清空死亡追踪
	EmptyFrameResetThreshold = 60
)

// Axis Colors (坐标轴颜色)
const (
	// AxisColor 坐标轴线条颜色
	AxisColor = "rgba(47, 79, 80, 0.7)"

	// AxisLengthRatio 默认坐标轴长度占半屏的比例
	AxisLengthRatio = 0.8
)
