package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/gonewx/battlefx/internal/colorutil"
	"github.com/gonewx/battlefx/pkg/components"
	"github.com/gonewx/battlefx/pkg/config"
	"github.com/gonewx/battlefx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// 星空分类参数
type starClassParams struct {
	class        components.StarClass
	share        float64 // 累计概率上限
	scatter      float64 // 分布范围相对画布的倍数
	sizeMin      float64
	sizeRange    float64
	opacityMin   float64
	opacityRange float64
	twinkleMin   float64
	twinkleRange float64
	amplitude    float64 // 闪烁幅度
}

var starClasses = []starClassParams{
	{components.StarBright, 0.05, 1.8, 1.0, 1.5, 0.6, 0.4, 0.01, 0.02, 0.3},
	{components.StarColored, 0.15, 1.6, 0.8, 1.2, 0.4, 0.3, 0.005, 0.015, 0.25},
	{components.StarNormal, 1.0, 1.5, 0.3, 0.8, 0.1, 0.4, 0, 0.008, 0.15},
}

var (
	brightStarColors = []colorutil.Color{
		colorutil.FromColor(colornames.White, 1),
		colorutil.FromColor(colornames.Aliceblue, 1),
		colorutil.FromColor(colornames.Ghostwhite, 1),
	}
	coloredStarColors = []colorutil.Color{
		colorutil.RGB(255, 180, 120), // K 型橙
		colorutil.RGB(255, 200, 140), // 橙黄
		colorutil.RGB(255, 220, 180), // G 型黄
		colorutil.RGB(180, 200, 255), // B 型蓝白
		colorutil.RGB(255, 160, 100), // M 型红
	}
	nebulaColors = []colorutil.Color{
		colorutil.RGB(100, 50, 150),
		colorutil.RGB(50, 100, 150),
		colorutil.RGB(150, 80, 50),
	}
)

// 后期效果参数
const (
	nebulaAlpha     = 0.02
	nebulaSizeRatio = 0.4
	noisePixelAlpha = 25.0 / 255
	grainAlpha      = 0.04
	vignetteAlpha   = 0.8
	vignetteRadius  = 0.8
	vignetteGrid    = 24
)

// noiseTexture 缓存的颗粒噪声，按尺寸精确匹配
type noiseTexture struct {
	width, height int
	lift, press   *ebiten.Image
}

// SpaceBackgroundSystem 星空、星云与电影感后期
//
// 星空在一个"纪元"内只生成一次，ResetStars 或 Invalidate 后下一帧重新生成。
type SpaceBackgroundSystem struct {
	rng       *rand.Rand
	starCount int
	effects   config.EffectsConfig

	stars       []components.Star
	initialized bool
	noise       *noiseTexture

	mesh utils.Mesh
}

// NewSpaceBackgroundSystem 创建背景系统
func NewSpaceBackgroundSystem(cfg *config.SceneConfig, rng *rand.Rand) *SpaceBackgroundSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &SpaceBackgroundSystem{
		rng:       rng,
		starCount: cfg.StarCount,
		effects:   cfg.Effects,
	}
}

// SetEffects 更新后期效果开关
func (s *SpaceBackgroundSystem) SetEffects(effects config.EffectsConfig) {
	s.effects = effects
}

// Effects 返回当前后期效果开关
func (s *SpaceBackgroundSystem) Effects() config.EffectsConfig {
	return s.effects
}

// EnsureStars 在本纪元尚未生成时生成星空
func (s *SpaceBackgroundSystem) EnsureStars(width, height float64) {
	if s.initialized {
		return
	}
	s.stars = s.stars[:0]
	for i := 0; i < s.starCount; i++ {
		s.stars = append(s.stars, s.newStar(width, height))
	}
	s.initialized = true
	log.Printf("[SpaceBackground] Generated %d stars for %.0fx%.0f", len(s.stars), width, height)
}

func (s *SpaceBackgroundSystem) newStar(width, height float64) components.Star {
	roll := s.rng.Float64()
	params := starClasses[len(starClasses)-1]
	for _, p := range starClasses {
		if roll < p.share {
			params = p
			break
		}
	}

	star := components.Star{
		X:            (s.rng.Float64() - 0.5) * width * params.scatter,
		Y:            (s.rng.Float64() - 0.5) * height * params.scatter,
		Size:         params.sizeMin + s.rng.Float64()*params.sizeRange,
		Opacity:      params.opacityMin + s.rng.Float64()*params.opacityRange,
		TwinkleSpeed: params.twinkleMin + s.rng.Float64()*params.twinkleRange,
		Phase:        s.rng.Float64() * 2 * math.Pi,
		Class:        params.class,
	}
	switch params.class {
	case components.StarBright:
		star.Color = brightStarColors[s.rng.Intn(len(brightStarColors))]
	case components.StarColored:
		star.Color = coloredStarColors[s.rng.Intn(len(coloredStarColors))]
	default:
		star.Color = colorutil.White
	}
	return star
}

// ResetStars 清空星空，下次 EnsureStars 重新生成（主题切换时调用）
func (s *SpaceBackgroundSystem) ResetStars() {
	s.initialized = false
	s.stars = s.stars[:0]
}

// Invalidate 画布尺寸变化：星空与噪声纹理都需要重建
func (s *SpaceBackgroundSystem) Invalidate() {
	s.ResetStars()
	if s.noise != nil {
		s.noise.lift.Deallocate()
		s.noise.press.Deallocate()
		s.noise = nil
	}
}

// Stars 返回星星快照（副本）
func (s *SpaceBackgroundSystem) Stars() []components.Star {
	out := make([]components.Star, len(s.stars))
	copy(out, s.stars)
	return out
}

// StarCount 返回当前星星数量
func (s *SpaceBackgroundSystem) StarCount() int {
	return len(s.stars)
}

// Initialized 返回本纪元星空是否已生成
func (s *SpaceBackgroundSystem) Initialized() bool {
	return s.initialized
}

// DrawThemedBackground 用主题背景色填充画布
func (s *SpaceBackgroundSystem) DrawThemedBackground(canvas *utils.Canvas, theme config.PlanetTheme) {
	bg, err := colorutil.Parse(theme.Background)
	if err != nil {
		log.Printf("[SpaceBackground] Warning: theme %q background: %v", theme.Name, err)
		bg = colorutil.Black
	}
	canvas.Fill(bg)
}

// TwinkleOpacity 计算星星在 elapsed 秒时的不透明度
func TwinkleOpacity(star components.Star, elapsed float64) float64 {
	amp := starClasses[len(starClasses)-1].amplitude
	for _, p := range starClasses {
		if p.class == star.Class {
			amp = p.amplitude
			break
		}
	}
	twinkle := math.Sin(elapsed*star.TwinkleSpeed*2*math.Pi+star.Phase)*amp + (1 - amp)
	return star.Opacity * twinkle
}

// DrawStars 绘制闪烁的星空，然后叠加星云
//
// 所有星星合并为一个网格一次提交。亮星和彩色星带有光晕。
func (s *SpaceBackgroundSystem) DrawStars(canvas *utils.Canvas, elapsed float64) {
	s.mesh.Reset()
	for _, star := range s.stars {
		opacity := TwinkleOpacity(star, elapsed)
		if opacity <= 0 {
			continue
		}
		if star.Class == components.StarBright || star.Class == components.StarColored {
			blur := star.Size * 1.5
			g := utils.NewConcentricGradient(star.X, star.Y, star.Size*0.5, star.Size+blur,
				utils.GradientStop{Offset: 0, Color: star.Color.WithAlpha(opacity * 0.3)},
				utils.GradientStop{Offset: 1, Color: star.Color.WithAlpha(0)},
			)
			s.mesh.AddDisc(star.X, star.Y, star.Size+blur, 2, 12, g.ColorAt)
		}
		s.mesh.AddDisc(star.X, star.Y, star.Size, 1, 10, utils.SolidColor(star.Color.WithAlpha(opacity)))
		if s.mesh.Len() > 60000 {
			canvas.DrawMesh(&s.mesh, 1, noBlend)
			s.mesh.Reset()
		}
	}
	canvas.DrawMesh(&s.mesh, 1, noBlend)

	if s.effects.Nebula {
		s.drawNebula(canvas, elapsed)
	}
}

// NebulaCenter 计算第 i 个星云在 elapsed 秒时的中心
func NebulaCenter(i int, elapsed, width, height float64) (x, y float64) {
	t := elapsed / 10
	fi := float64(i)
	x = (math.Sin(t+fi*2)*0.3+0.5)*width - width/2
	y = (math.Cos(t*0.7+fi*1.5)*0.3+0.5)*height - height/2
	return x, y
}

func (s *SpaceBackgroundSystem) drawNebula(canvas *utils.Canvas, elapsed float64) {
	w, h := canvas.Width(), canvas.Height()
	size := math.Min(w, h) * nebulaSizeRatio
	if size <= 0 {
		return
	}
	s.mesh.Reset()
	for i, col := range nebulaColors {
		x, y := NebulaCenter(i, elapsed, w, h)
		g := utils.NewConcentricGradient(x, y, 0, size,
			utils.GradientStop{Offset: 0, Color: col},
			utils.GradientStop{Offset: 0.3, Color: col},
			utils.GradientStop{Offset: 1, Color: colorutil.Transparent},
		)
		s.mesh.AddDisc(x, y, size, 6, 48, g.ColorAt)
	}
	canvas.DrawMesh(&s.mesh, nebulaAlpha, utils.BlendScreen)
}

// DrawGrainAndVignette 叠加颗粒噪声与暗角
func (s *SpaceBackgroundSystem) DrawGrainAndVignette(canvas *utils.Canvas) {
	w, h := canvas.Size()
	fw, fh := float64(w), float64(h)

	if s.effects.Grain {
		if noise := s.ensureNoise(w, h); noise != nil {
			alpha := grainAlpha * noisePixelAlpha
			canvas.DrawImageAt(noise.lift, -fw/2, -fh/2, alpha, utils.BlendLift)
			canvas.DrawImageAt(noise.press, -fw/2, -fh/2, alpha, utils.BlendPress)
		}
	}

	if s.effects.Vignette {
		g := utils.NewConcentricGradient(0, 0, 0, math.Max(fw, fh)*vignetteRadius,
			utils.GradientStop{Offset: 0, Color: colorutil.White},
			utils.GradientStop{Offset: 0.6, Color: colorutil.RGBA(255, 255, 255, 0.9)},
			utils.GradientStop{Offset: 1, Color: colorutil.RGBA(128, 128, 128, 0.5)},
		)
		s.mesh.Reset()
		s.mesh.AddRectGrid(-fw/2, -fh/2, fw, fh, vignetteGrid, vignetteGrid, g.ColorAt)
		canvas.DrawMesh(&s.mesh, vignetteAlpha, utils.BlendMultiply)
	}
}

// NoiseSize 返回缓存噪声纹理的尺寸，未生成时为 0,0
func (s *SpaceBackgroundSystem) NoiseSize() (w, h int) {
	if s.noise == nil {
		return 0, 0
	}
	return s.noise.width, s.noise.height
}

// ensureNoise 尺寸不同时重新生成噪声
//
// 每个像素的随机值 n 拆成两张纹理：亮部 max(0, 2n-1) 与暗部 max(0, 1-2n)。
func (s *SpaceBackgroundSystem) ensureNoise(w, h int) *noiseTexture {
	if s.noise != nil && s.noise.width == w && s.noise.height == h {
		return s.noise
	}
	if s.noise != nil {
		s.noise.lift.Deallocate()
		s.noise.press.Deallocate()
		s.noise = nil
	}
	if w <= 0 || h <= 0 {
		return nil
	}

	lift := make([]byte, 4*w*h)
	press := make([]byte, 4*w*h)
	for i := 0; i < w*h; i++ {
		n := s.rng.Intn(256)
		l := byte(max(0, 2*n-255))
		p := byte(max(0, 255-2*n))
		lift[4*i], lift[4*i+1], lift[4*i+2], lift[4*i+3] = l, l, l, 0xff
		press[4*i], press[4*i+1], press[4*i+2], press[4*i+3] = p, p, p, 0xff
	}

	tex := &noiseTexture{
		width:  w,
		height: h,
		lift:   ebiten.NewImage(w, h),
		press:  ebiten.NewImage(w, h),
	}
	tex.lift.WritePixels(lift)
	tex.press.WritePixels(press)
	s.noise = tex
	log.Printf("[SpaceBackground] Regenerated grain texture %dx%d", w, h)
	return tex
}
