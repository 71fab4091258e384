// Command sdldisplay is a second playable frontend for console.Core,
// rendering through go-sdl2 instead of ebiten to prove the core has no
// GUI-framework lock-in.
package main

import (
	"flag"
	"unsafe"

	"github.com/golang/glog"
	"github.com/kbrandt/nescore/console"
	"github.com/veandco/go-sdl2/sdl"
)

var romFile = flag.String("nes_rom", "", "path to the NES ROM to run")

const windowScale = 3

var keymap = map[sdl.Keycode]uint8{
	sdl.K_x:        console.ButtonA,
	sdl.K_z:        console.ButtonB,
	sdl.K_RSHIFT:   console.ButtonSelect,
	sdl.K_RETURN:   console.ButtonStart,
	sdl.K_UP:       console.ButtonUp,
	sdl.K_DOWN:     console.ButtonDown,
	sdl.K_LEFT:     console.ButtonLeft,
	sdl.K_RIGHT:    console.ButtonRight,
}

type padState struct {
	held uint8
}

func (p *padState) poll() uint8 { return p.held }

func (p *padState) handle(e *sdl.KeyboardEvent) {
	button, ok := keymap[e.Keysym.Sym]
	if !ok {
		return
	}
	if e.Type == sdl.KEYDOWN {
		p.held |= button
	} else {
		p.held &^= button
	}
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if *romFile == "" {
		glog.Exit("sdldisplay: -nes_rom is required")
	}

	core := console.NewCore()
	if err := core.LoadCartridge(*romFile); err != nil {
		glog.Exitf("sdldisplay: %v", err)
	}
	pad1 := &padState{}
	core.AttachController(0, console.NewController(pad1.poll))

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		glog.Exitf("sdldisplay: sdl init: %v", err)
	}
	defer sdl.Quit()

	w, h := core.Resolution()
	window, err := sdl.CreateWindow(
		"sdldisplay: "+*romFile,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(w*windowScale), int32(h*windowScale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		glog.Exitf("sdldisplay: create window: %v", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		glog.Exitf("sdldisplay: create renderer: %v", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(w), int32(h),
	)
	if err != nil {
		glog.Exitf("sdldisplay: create texture: %v", err)
	}
	defer texture.Destroy()

	pixels := make([]byte, 0, w*h*4)
	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Keysym.Sym == sdl.K_ESCAPE && e.Type == sdl.KEYDOWN {
					running = false
					continue
				}
				pad1.handle(e)
			}
		}

		core.TickUntilVblank()

		pixels = pixels[:0]
		for _, px := range core.Framebuffer() {
			pixels = append(pixels, px...)
		}
		if err := texture.Update(nil, unsafe.Pointer(&pixels[0]), w*4); err != nil {
			glog.Warningf("sdldisplay: texture update: %v", err)
		}

		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()
	}
}
