// Package main provides an interactive viewer for the battle-scene renderer.
//
// A small orbital simulation drives the compositor: ships orbit the planet
// and fire at drifting enemies, enemies explode when their HP runs out, and
// periodic surface shots travel along the planet curve.
//
// Usage:
//
//	go run ./cmd/battleviewer [flags]
//
// Flags:
//
//	--verbose        Enable verbose logging (default off)
//	--debug          Show the per-frame debug overlay
//	--config <path>  Scene config YAML (default: embedded)
//	--theme <n>      Start theme index (default: saved setting)
//	--seed <n>       Simulation seed (default: time based)
//
// Controls:
//
//	T / Shift+T  Next / previous planet theme
//	N / G / V    Toggle nebula / grain / vignette
//	X            Toggle reference axes
//	R            Reset explosion tracking
//	P            Pause simulation
//	H            Toggle help
//	F11          Toggle fullscreen
//	Q / Escape   Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gonewx/battlefx/internal/demo"
	"github.com/gonewx/battlefx/pkg/app"
	"github.com/gonewx/battlefx/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	debugFlag   = flag.Bool("debug", false, "Show the per-frame debug overlay")
	configFlag  = flag.String("config", "", "Scene config YAML path (default: embedded)")
	themeFlag   = flag.Int("theme", -1, "Start theme index (-1 = saved setting)")
	seedFlag    = flag.Int64("seed", 0, "Simulation seed (0 = time based)")
)

var errQuit = errors.New("quit requested")

var helpLines = []string{
	"T/Shift+T theme   N nebula   G grain   V vignette",
	"X axes   R reset tracking   P pause   H help   F11 fullscreen   Q quit",
}

// pausableSimulation 暂停时 viewer 不再调用 App.Update，场景重复绘制最后一帧
type pausableSimulation struct {
	*demo.Simulation
	paused bool
}

// viewer 在 App 之上叠加 HUD 和观察器快捷键
type viewer struct {
	*app.App
	sim      *pausableSimulation
	face     *text.GoXFace
	showHelp bool
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.sim.paused = !v.sim.paused
		log.Printf("[Viewer] Paused: %v", v.sim.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		v.showHelp = !v.showHelp
	}
	if v.sim.paused {
		return nil
	}
	return v.App.Update()
}

func (v *viewer) Draw(screen *ebiten.Image) {
	v.App.Draw(screen)
	v.drawHUD(screen)
}

// drawHUD 右下角显示主题与战斗统计，底部显示帮助
func (v *viewer) drawHUD(screen *ebiten.Image) {
	scene := v.Scene()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	theme := v.SceneConfig().Themes.GetPlanetTheme(scene.ThemeIndex())
	shots, kills := v.sim.Stats()

	status := fmt.Sprintf("%s  |  shots %d  kills %d  |  t=%.0fs", theme.Name, shots, kills, v.sim.Elapsed())
	if v.sim.paused {
		status += "  [PAUSED]"
	}
	v.drawText(screen, status, float64(w-7*len(status)-10), float64(h-24), color.NRGBA{200, 210, 230, 220})

	if v.showHelp {
		for i, line := range helpLines {
			v.drawText(screen, line, 10, float64(h-24-(len(helpLines)-i)*16), color.NRGBA{150, 160, 180, 200})
		}
	}
}

func (v *viewer) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, v.face, op)
}

func main() {
	flag.Parse()

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("=== Battle Scene Viewer (seed %d) ===", seed)

	sim := &pausableSimulation{Simulation: demo.NewSimulation(rand.New(rand.NewSource(seed)))}

	a, err := app.NewApp(app.Config{
		Verbose:         *verboseFlag,
		Debug:           *debugFlag,
		SceneConfigPath: *configFlag,
		ThemeIndex:      *themeFlag,
		Simulation:      sim,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal("Failed to initialize viewer:", err)
	}
	sim.ShowAxes = func() bool { return a.Settings().GetSettings().ShowAxes }
	sim.Size = a.Scene().Size

	v := &viewer{
		App:      a,
		sim:      sim,
		face:     text.NewGoXFace(basicfont.Face7x13),
		showHelp: true,
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle + " Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, errQuit) {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}

	if err := a.Shutdown(); err != nil {
		fmt.Fprintln(os.Stderr, "shutdown:", err)
	}
	log.Println("Viewer closed")
}
