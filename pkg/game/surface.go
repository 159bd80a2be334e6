package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SurfaceProvider 按标识解析绘制表面
type SurfaceProvider interface {
	Surface(id string) (*ebiten.Image, bool)
}

// SurfaceRegistry 简单的表面注册表
//
// App 每帧把屏幕绑定到默认表面标识；离屏渲染可以绑定额外的图像。
type SurfaceRegistry struct {
	surfaces map[string]*ebiten.Image
}

// NewSurfaceRegistry 创建空注册表
func NewSurfaceRegistry() *SurfaceRegistry {
	return &SurfaceRegistry{surfaces: make(map[string]*ebiten.Image)}
}

// Bind 将 id 绑定到 img；img 为 nil 时等同于 Unbind
func (r *SurfaceRegistry) Bind(id string, img *ebiten.Image) {
	if img == nil {
		r.Unbind(id)
		return
	}
	r.surfaces[id] = img
}

// Unbind 移除 id 的绑定
func (r *SurfaceRegistry) Unbind(id string) {
	if _, ok := r.surfaces[id]; ok {
		delete(r.surfaces, id)
		log.Printf("[SurfaceRegistry] Unbound surface %q", id)
	}
}

// Surface 实现 SurfaceProvider
func (r *SurfaceRegistry) Surface(id string) (*ebiten.Image, bool) {
	img, ok := r.surfaces[id]
	return img, ok
}

// Len 返回已绑定的表面数量
func (r *SurfaceRegistry) Len() int {
	return len(r.surfaces)
}
