package mappers

import (
	"github.com/golang/glog"
	"github.com/kbrandt/nescore/nesrom"
)

func init() {
	RegisterMapper(0, &mapper0{
		baseMapper: newBaseMapper(0, "NROM"),
	})
}

// mapper0 implements NROM: a single fixed 16KB or 32KB PRG bank
// ($8000-$FFFF, mirrored to fill the 32KB window when the cartridge
// only has 16KB), one fixed 8KB CHR bank ($0000-$1FFF, writable when
// the cartridge has no CHR ROM and is backed by CHR RAM instead), and
// an optional 8KB of battery-backed PRG RAM at $6000-$7FFF.
type mapper0 struct {
	*baseMapper
	sram   []uint8
	chrRAM bool
}

func (m *mapper0) Init(r *nesrom.ROM) {
	m.baseMapper.Init(r)
	if r.HasSaveRAM() {
		m.sram = make([]uint8, 0x2000)
	}
	m.chrRAM = r.ChrSize() == 0
	if m.chrRAM {
		glog.V(1).Infof("mapper0: no CHR ROM in cartridge, backing with 8KB CHR RAM")
	}
}

func (m *mapper0) PrgRead(addr uint16) uint8 {
	switch {
	case addr < 0x6000:
		return 0
	case addr < 0x8000:
		if m.sram == nil {
			return 0
		}
		return m.sram[addr-0x6000]
	default:
		// NROM-128 only has 16KB of PRG ROM; the second 16KB
		// window mirrors the first.
		off := addr - 0x8000
		if m.rom.NumPrgBlocks() == 1 {
			off %= 0x4000
		}
		return m.rom.PrgRead(off)
	}
}

func (m *mapper0) PrgWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 && m.sram != nil {
		m.sram[addr-0x6000] = val
	}
	// PRG ROM at $8000-$FFFF is not writable on NROM.
}

func (m *mapper0) ChrRead(addr uint16) uint8 {
	return m.rom.ChrRead(addr)
}

func (m *mapper0) ChrWrite(addr uint16, val uint8) {
	if m.chrRAM {
		m.rom.ChrWrite(addr, val)
	}
}
