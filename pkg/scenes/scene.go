package scenes

import (
	"github.com/gonewx/battlefx/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

var (
	_ Scene        = (*BattleScene)(nil)
	_ game.Closer  = (*BattleScene)(nil)
	_ BattleEvents = (*BattleScene)(nil)
)
