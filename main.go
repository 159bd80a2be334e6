package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/gonewx/battlefx/internal/demo"
	"github.com/gonewx/battlefx/pkg/app"
	"github.com/gonewx/battlefx/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
	configFlag  = flag.String("config", "", "Scene config YAML path (default: embedded)")
	themeFlag   = flag.Int("theme", -1, "Start theme index (-1 = saved setting)")
)

func main() {
	flag.Parse()

	sim := demo.NewSimulation(nil)
	a, err := app.NewApp(app.Config{
		Verbose:         *verboseFlag,
		SceneConfigPath: *configFlag,
		ThemeIndex:      *themeFlag,
		Simulation:      sim,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	sim.ShowAxes = func() bool { return a.Settings().GetSettings().ShowAxes }
	sim.Size = a.Scene().Size

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}

	if err := a.Shutdown(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
