// Package console wires mos6502.CPU, ppu.PPU, a cartridge mapper and
// the OAM-DMA engine together into the NES memory map, and drives them
// in lock-step through Core.
package console

import (
	"github.com/golang/glog"
	"github.com/kbrandt/nescore/mappers"
	"github.com/kbrandt/nescore/mos6502"
	"github.com/kbrandt/nescore/ppu"
)

// CPU memory map boundaries. https://www.nesdev.org/wiki/CPU_memory_map
const (
	ramMirrorEnd    = 0x1FFF
	ppuRegMirrorEnd = 0x3FFF
	ioRegStart      = 0x4000
	ioRegEnd        = 0x4017
	oamDMARegister  = 0x4014
	controller1Reg  = 0x4016
	controller2Reg  = 0x4017
)

const ramSize = 0x800 // 2KB built-in console RAM

// BusActivityKind distinguishes a recorded Read from a Write in the
// trace buffer.
type BusActivityKind uint8

const (
	BusRead BusActivityKind = iota
	BusWrite
)

// BusActivity is one recorded CPU-visible memory access, mirroring
// original_source's Bus::last_activity - kept here as a ring buffer
// of the last N accesses rather than a single latest-access field.
// See EnableTrace.
type BusActivity struct {
	Address uint16
	Value   uint8
	Kind    BusActivityKind
}

// Bus is the NES CPU address bus: RAM, PPU registers, controller ports
// and cartridge space, all reached through Read/Write. Every Read and
// Write first advances the PPU by exactly 3 dots (tickPPU) - the fixed
// NTSC ratio between a CPU cycle and a PPU dot - before the access is
// decoded, matching the real hardware's co-clocking.
type Bus struct {
	cpu    *mos6502.CPU
	ppu    *ppu.PPU
	mapper mappers.Mapper
	oamdma *OAMDMA

	ram [ramSize]uint8

	controllers [2]*Controller

	traceEnabled bool
	trace        []BusActivity
	traceNext    int
}

func newBus() *Bus {
	b := &Bus{}
	b.cpu = mos6502.New()
	b.ppu = ppu.New(b)
	return b
}

// attachCartridge installs the mapper for the currently loaded ROM and
// tells the PPU which mirroring mode it reports.
func (b *Bus) attachCartridge(m mappers.Mapper) {
	b.mapper = m
	b.ppu.SetMirroringMode(m.MirroringMode())
}

// AttachController wires a Controller into port 0 ($4016) or 1
// ($4017).
func (b *Bus) AttachController(port int, c *Controller) {
	b.controllers[port] = c
}

// EnableTrace turns on a ring buffer holding the last n recorded
// BusActivity entries; n<=0 disables tracing and frees the buffer.
// original_source keeps only the single latest access; this keeps a
// short history for tests and cmd/inspect's activity pane.
func (b *Bus) EnableTrace(n int) {
	if n <= 0 {
		b.traceEnabled = false
		b.trace = nil
		return
	}
	b.traceEnabled = true
	b.trace = make([]BusActivity, 0, n)
	b.traceNext = 0
}

// Trace returns the recorded activity ring buffer, oldest first.
func (b *Bus) Trace() []BusActivity {
	if !b.traceEnabled || len(b.trace) < cap(b.trace) {
		return b.trace
	}
	out := make([]BusActivity, 0, len(b.trace))
	out = append(out, b.trace[b.traceNext:]...)
	out = append(out, b.trace[:b.traceNext]...)
	return out
}

func (b *Bus) record(a BusActivity) {
	if !b.traceEnabled {
		return
	}
	if len(b.trace) < cap(b.trace) {
		b.trace = append(b.trace, a)
		return
	}
	b.trace[b.traceNext] = a
	b.traceNext = (b.traceNext + 1) % cap(b.trace)
}

// tickPPU advances the PPU by exactly 3 dots - one CPU cycle's worth
// at NTSC speed.
func (b *Bus) tickPPU() {
	b.ppu.Tick(3)
}

// Read implements mos6502.Bus and ticks the PPU before decoding the
// address.
func (b *Bus) Read(addr uint16) uint8 {
	b.tickPPU()
	v := b.readNoTick(addr)
	b.record(BusActivity{Address: addr, Value: v, Kind: BusRead})
	return v
}

// readNoTick decodes a read without advancing the PPU - used by OAMDMA,
// which ticks the PPU itself once per DMA cycle instead of once per
// underlying bus access, matching original_source's oam.cpp calling
// Bus::read_no_tick.
func (b *Bus) readNoTick(addr uint16) uint8 {
	switch {
	case addr <= ramMirrorEnd:
		return b.ram[addr&0x07FF]
	case addr <= ppuRegMirrorEnd:
		return b.ppu.ReadReg(addr & 0x2007)
	case addr <= ioRegEnd:
		switch addr {
		case controller1Reg, controller2Reg:
			if c := b.controllers[addr-controller1Reg]; c != nil {
				return c.Read()
			}
			return 0
		default:
			return 0 // APU registers: out of scope (Non-goal)
		}
	default:
		if b.mapper == nil {
			return 0
		}
		return b.mapper.PrgRead(addr)
	}
}

// Write implements mos6502.Bus and ticks the PPU before decoding the
// address.
func (b *Bus) Write(addr uint16, val uint8) {
	b.tickPPU()
	b.writeNoTick(addr, val)
	b.record(BusActivity{Address: addr, Value: val, Kind: BusWrite})
}

func (b *Bus) writeNoTick(addr uint16, val uint8) {
	switch {
	case addr <= ramMirrorEnd:
		b.ram[addr&0x07FF] = val
	case addr <= ppuRegMirrorEnd:
		b.ppu.WriteReg(addr&0x2007, val)
	case addr <= ioRegEnd:
		switch addr {
		case oamDMARegister:
			if b.oamdma != nil {
				glog.V(2).Infof("console: OAM-DMA start, page %#02x", val)
				b.oamdma.Start(val)
			}
		case controller1Reg:
			// Strobe is wired to both controller ports; each
			// decides for itself whether it's present.
			for _, c := range b.controllers {
				if c != nil {
					c.Write(val)
				}
			}
		}
	default:
		if b.mapper != nil {
			b.mapper.PrgWrite(addr, val)
		}
	}
}

// ChrRead implements ppu.Bus.
func (b *Bus) ChrRead(addr uint16) uint8 {
	if b.mapper == nil {
		return 0
	}
	return b.mapper.ChrRead(addr)
}

// ChrWrite implements ppu.Bus.
func (b *Bus) ChrWrite(addr uint16, val uint8) {
	if b.mapper != nil {
		b.mapper.ChrWrite(addr, val)
	}
}

// TriggerNMI implements ppu.Bus: the PPU calls this on the vblank
// edge when NMI generation is enabled.
func (b *Bus) TriggerNMI() {
	glog.V(2).Infof("console: NMI")
	b.cpu.RequestNMI()
}
