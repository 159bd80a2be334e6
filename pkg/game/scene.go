package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the viewer (e.g. the battle scene).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update advances the scene by deltaTime seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，场景被切换出去时释放 GPU 纹理等资源
type Closer interface {
	Close()
}
