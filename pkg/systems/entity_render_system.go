package systems

import (
	"log"
	"math"

	"github.com/gonewx/battlefx/internal/colorutil"
	"github.com/gonewx/battlefx/pkg/components"
	"github.com/gonewx/battlefx/pkg/config"
	"github.com/gonewx/battlefx/pkg/utils"
)

// DiscStyle 舰船/敌人圆盘的配色参数
//
// 各偏移量都会乘以阴影强度 max(0.2, alpha)。
type DiscStyle struct {
	BaseMin    [3]float64 // 底色通道下限
	BaseOffset [3]float64 // 底色相对阴影色的偏移
	Highlight  [3]float64 // 高光偏移
	Mid        [3]float64 // 中间调偏移
	Rim        float64    // 边缘光偏移
	RimAlphaK  float64    // 边缘光 alpha 系数
	RimAlpha   float64    // 边缘光 alpha 上限
}

var (
	// ShipDiscStyle 我方舰船：偏蓝的暗底
	ShipDiscStyle = DiscStyle{
		BaseMin:    [3]float64{30, 60, 100},
		BaseOffset: [3]float64{-30, -20, 0},
		Highlight:  [3]float64{80, 80, 60},
		Mid:        [3]float64{40, 40, 30},
		Rim:        30,
		RimAlphaK:  0.6,
		RimAlpha:   0.4,
	}

	// EnemyDiscStyle 敌人：偏红的暗底
	EnemyDiscStyle = DiscStyle{
		BaseMin:    [3]float64{120, 20, 20},
		BaseOffset: [3]float64{-20, -30, -30},
		Highlight:  [3]float64{60, 80, 80},
		Mid:        [3]float64{30, 40, 40},
		Rim:        25,
		RimAlphaK:  0.5,
		RimAlpha:   0.3,
	}
)

const (
	discMeshRings   = 4
	highlightShift  = 0.3
	highlightRadius = 0.8
)

// DiscColors 圆盘各层颜色
type DiscColors struct {
	Shadow    float64         // 阴影强度
	Final     colorutil.Color // 阴影调整后的颜色（楔形）
	Base      colorutil.Color // 底盘
	Highlight colorutil.Color
	Mid       colorutil.Color
	Rim       colorutil.Color
}

// Colors 根据输入颜色计算圆盘各层颜色
//
// 输入 alpha 表示深度（行星背后较暗）。
func (ds DiscStyle) Colors(c colorutil.Color) DiscColors {
	shadow := math.Max(0.2, c.A)
	final := c.Scale(shadow)

	ch := [3]float64{float64(final.R), float64(final.G), float64(final.B)}
	var base [3]uint8
	for i := range ch {
		base[i] = uint8(math.Min(255, math.Max(ds.BaseMin[i], ch[i]+ds.BaseOffset[i])))
	}

	return DiscColors{
		Shadow:    shadow,
		Final:     final,
		Base:      colorutil.RGBA(base[0], base[1], base[2], math.Max(0.3, c.A)),
		Highlight: final.Add(ds.Highlight[0]*shadow, ds.Highlight[1]*shadow, ds.Highlight[2]*shadow).WithAlpha(0.8 * c.A),
		Mid:       final.Add(ds.Mid[0]*shadow, ds.Mid[1]*shadow, ds.Mid[2]*shadow).WithAlpha(0.4 * c.A),
		Rim:       final.Add(ds.Rim*shadow, ds.Rim*shadow, ds.Rim*shadow).WithAlpha(math.Min(ds.RimAlpha, c.A*ds.RimAlphaK)),
	}
}

// WedgeAngles 返回从顶部开始、按比例扫过的楔形角度范围
func WedgeAngles(ratio float64) (start, end float64) {
	end = -math.Pi / 2
	start = end - 2*math.Pi*colorutil.Clamp01(ratio)
	return start, end
}

// EntityRenderSystem 绘制舰船与敌人圆盘
type EntityRenderSystem struct {
	mesh utils.Mesh
}

// NewEntityRenderSystem 创建实体渲染系统
func NewEntityRenderSystem() *EntityRenderSystem {
	return &EntityRenderSystem{}
}

// DrawShip 绘制舰船，楔形表示攻击充能进度
func (s *EntityRenderSystem) DrawShip(canvas *utils.Canvas, x, y, radius float64, color colorutil.Color, attackRatio float64) {
	s.drawDisc(canvas, x, y, radius, color, attackRatio, ShipDiscStyle)
}

// DrawEnemy 绘制敌人，楔形表示剩余血量
func (s *EntityRenderSystem) DrawEnemy(canvas *utils.Canvas, x, y, radius float64, color colorutil.Color, hpRatio float64) {
	s.drawDisc(canvas, x, y, radius, color, hpRatio, EnemyDiscStyle)
}

func (s *EntityRenderSystem) drawDisc(canvas *utils.Canvas, x, y, radius float64, color colorutil.Color, ratio float64, style DiscStyle) {
	if radius <= 0 {
		return
	}
	colors := style.Colors(color)
	segments := utils.SegmentsForRadius(radius)

	canvas.FillCircle(x, y, radius, colors.Base, noBlend)

	if ratio > 0 {
		start, end := WedgeAngles(ratio)
		wedgeSegments := max(2, int(math.Ceil(float64(segments)*colorutil.Clamp01(ratio))))

		s.mesh.Reset()
		s.mesh.AddSector(x, y, radius, start, end, 1, wedgeSegments, utils.SolidColor(colors.Final))
		canvas.DrawMesh(&s.mesh, 1, noBlend)

		highlight := utils.NewRadialGradient(
			x-radius*highlightShift, y-radius*highlightShift, 0,
			x, y, radius*highlightRadius,
			utils.GradientStop{Offset: 0, Color: colors.Highlight},
			utils.GradientStop{Offset: 0.5, Color: colors.Mid},
			utils.GradientStop{Offset: 1, Color: colors.Final.WithAlpha(0)},
		)
		s.mesh.Reset()
		s.mesh.AddSector(x, y, radius, start, end, discMeshRings, wedgeSegments, highlight.ColorAt)
		canvas.DrawMesh(&s.mesh, 1, noBlend)
	}

	canvas.StrokeCircle(x, y, radius, utils.StrokeStyle{Width: 0.8, Color: colors.Rim})
}

// DrawAttackRange 以舰船颜色（alpha 0.3）绘制虚线攻击范围圈
//
// 颜色通过严格的 ChangeAlpha 处理，非法颜色记录日志并跳过。
func (s *EntityRenderSystem) DrawAttackRange(canvas *utils.Canvas, x, y, attackRange float64, color string) {
	if attackRange <= 0 {
		return
	}
	ringColor, err := colorutil.ChangeAlpha(color, 0.3)
	if err != nil {
		log.Printf("[EntityRender] Skipping attack range: %v", err)
		return
	}
	c := colorutil.ParseOr(ringColor, colorutil.Transparent)
	canvas.StrokeDashedArc(x, y, attackRange, 0, 2*math.Pi, 4, 4, utils.StrokeStyle{Width: 1, Color: c})
}

// DrawAxes 绘制三条参考坐标轴
func (s *EntityRenderSystem) DrawAxes(canvas *utils.Canvas, axes *components.AxisSet) {
	if axes == nil {
		return
	}
	style := utils.StrokeStyle{Width: 1, Color: colorutil.ParseOr(config.AxisColor, colorutil.Black)}
	for _, line := range []components.AxisLine{axes.X, axes.Y, axes.Z} {
		canvas.StrokeLine(line.StartX, line.StartY, line.EndX, line.EndY, style)
	}
}
