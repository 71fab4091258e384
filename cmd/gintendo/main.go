// Command gintendo is an ebiten-backed playable NES frontend: load a
// ROM, poll the keyboard into player 1's standard controller, and blit
// the emulated framebuffer every frame.
package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kbrandt/nescore/console"
)

var romFile = flag.String("nes_rom", "", "path to the NES ROM to run")

// keymap is player 1's layout; player 2 has no keyboard binding since
// this frontend only exercises a single physical controller.
var keymap = map[ebiten.Key]uint8{
	ebiten.KeyX:         console.ButtonA,
	ebiten.KeyZ:         console.ButtonB,
	ebiten.KeyRightBracket: console.ButtonSelect,
	ebiten.KeyEnter:     console.ButtonStart,
	ebiten.KeyArrowUp:   console.ButtonUp,
	ebiten.KeyArrowDown: console.ButtonDown,
	ebiten.KeyArrowLeft: console.ButtonLeft,
	ebiten.KeyArrowRight: console.ButtonRight,
}

func pollPad1() uint8 {
	var state uint8
	for key, button := range keymap {
		if ebiten.IsKeyPressed(key) {
			state |= button
		}
	}
	return state
}

type game struct {
	core   *console.Core
	screen *ebiten.Image
	pixels []byte
}

func newGame(core *console.Core) *game {
	w, h := core.Resolution()
	return &game{
		core:   core,
		screen: ebiten.NewImage(w, h),
		pixels: make([]byte, 0, w*h*4),
	}
}

func (g *game) Update() error {
	g.core.TickUntilVblank()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.pixels = g.pixels[:0]
	for _, px := range g.core.Framebuffer() {
		g.pixels = append(g.pixels, px...)
	}
	g.screen.WritePixels(g.pixels)
	screen.DrawImage(g.screen, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.core.Resolution()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if *romFile == "" {
		glog.Exit("gintendo: -nes_rom is required")
	}

	core := console.NewCore()
	if err := core.LoadCartridge(*romFile); err != nil {
		glog.Exitf("gintendo: %v", err)
	}
	core.AttachController(0, console.NewController(pollPad1))

	w, h := core.Resolution()
	ebiten.SetWindowSize(w*3, h*3)
	ebiten.SetWindowTitle("gintendo: " + *romFile)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(newGame(core)); err != nil {
		glog.Exitf("gintendo: %v", err)
	}
}
