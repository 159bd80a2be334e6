package systems

import "github.com/hajimehoshi/ebiten/v2"

// noBlend 普通 source-over 混合
var noBlend = ebiten.Blend{}
