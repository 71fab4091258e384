package console

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/kbrandt/nescore/mappers"
	"github.com/kbrandt/nescore/mos6502"
	"github.com/kbrandt/nescore/nesrom"
	"github.com/kbrandt/nescore/ppu"
)

// Core owns every emulated component - CPU, PPU, Bus, OAM-DMA and the
// loaded cartridge's mapper - and is the single entry point a frontend
// (cmd/gintendo, cmd/sdldisplay, cmd/inspect) drives. Grounded on the
// teacher's console/bus.go, which mixed this responsibility into Bus
// itself; split out here so Bus stays a pure address decoder.
type Core struct {
	bus    *Bus
	oamdma *OAMDMA
	mapper mappers.Mapper
}

// NewCore builds a console with no cartridge loaded yet; call
// LoadCartridge or Reset before stepping it.
func NewCore() *Core {
	c := &Core{bus: newBus(), oamdma: &OAMDMA{}}
	c.bus.oamdma = c.oamdma
	return c
}

// LoadCartridge reads path as an iNES ROM image, resolves its mapper
// and resets the console onto it.
func (c *Core) LoadCartridge(path string) error {
	rom, err := nesrom.New(path)
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}
	m, err := mappers.Get(rom)
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}
	glog.V(1).Infof("console: loaded %s (mapper %q)", path, m.Name())
	c.Reset(m)
	return nil
}

// Reset attaches m as the active cartridge and puts CPU/PPU/OAM-DMA
// back in their power-on state with that cartridge inserted.
func (c *Core) Reset(m mappers.Mapper) {
	c.mapper = m
	c.bus.ppu = ppu.New(c.bus)
	c.bus.attachCartridge(m)
	c.bus.cpu.Reset()
	c.bus.cpu.ResetFromBus(c.bus)
	*c.oamdma = OAMDMA{}
}

// AttachController wires a Controller into port 0 ($4016) or 1
// ($4017).
func (c *Core) AttachController(port int, ctrl *Controller) {
	c.bus.AttachController(port, ctrl)
}

// EnableTrace turns on the bus activity ring buffer; see
// Bus.EnableTrace.
func (c *Core) EnableTrace(n int) {
	c.bus.EnableTrace(n)
}

// Trace returns the recorded bus activity, oldest first.
func (c *Core) Trace() []BusActivity {
	return c.bus.Trace()
}

// Step advances the console by exactly one CPU clock cycle. OAM-DMA is
// stepped every cycle, active or not, so its get/put parity always
// tracks true bus parity rather than just the cycles within a single
// transfer; the CPU only runs on cycles where DMA didn't already own
// the bus. Whichever of the two actually does bus work ticks the PPU
// by 3 dots, so the PPU stays exactly in lockstep either way.
func (c *Core) Step() {
	active := c.oamdma.Active()
	c.oamdma.Step(c.bus)
	if !active {
		c.bus.cpu.Step(c.bus)
	}
}

// TickUntilVblank runs Step until the PPU finishes rendering the
// current frame, and returns how many CPU cycles that took.
func (c *Core) TickUntilVblank() uint64 {
	start := c.bus.ppu.FrameCount()
	var cycles uint64
	for c.bus.ppu.FrameCount() == start {
		c.Step()
		cycles++
	}
	return cycles
}

// Framebuffer returns the PPU's current pixel buffer, row-major RGBA,
// sized Resolution().
func (c *Core) Framebuffer() []ppu.Pixel {
	return c.bus.ppu.GetPixels()
}

// Resolution returns the NES's fixed display resolution.
func (c *Core) Resolution() (int, int) {
	return c.bus.ppu.GetResolution()
}

// CPUSnapshot returns a read-only view of CPU register state.
func (c *Core) CPUSnapshot() mos6502.Snapshot {
	return c.bus.cpu.Snapshot()
}

// PPUSnapshot returns a read-only view of PPU state.
func (c *Core) PPUSnapshot() ppu.Snapshot {
	return c.bus.ppu.Snapshot()
}

// Read lets diagnostic tooling (cmd/inspect) peek at the CPU address
// space without affecting emulation timing.
func (c *Core) Read(addr uint16) uint8 {
	return c.bus.readNoTick(addr)
}

// MapperName reports the active cartridge's mapper, or "" if none is
// loaded.
func (c *Core) MapperName() string {
	if c.mapper == nil {
		return ""
	}
	return c.mapper.Name()
}
