package ppu

import "testing"

type testBus struct {
	chr      [0x2000]uint8
	nmiCount int
}

func (b *testBus) ChrRead(addr uint16) uint8       { return b.chr[addr] }
func (b *testBus) ChrWrite(addr uint16, val uint8) { b.chr[addr] = val }
func (b *testBus) TriggerNMI()                     { b.nmiCount++ }

func TestWriteRegPPUCTRLSetsNametableBits(t *testing.T) {
	p := New(&testBus{})

	p.WriteReg(0, 0x03) // low 2 bits select nametable 3
	if got, want := p.t.nametableX(), uint16(1); got != want {
		t.Errorf("t.nametableX() = %d, want %d", got, want)
	}
	if got, want := p.t.nametableY(), uint16(1); got != want {
		t.Errorf("t.nametableY() = %d, want %d", got, want)
	}
}

func TestWriteRegPPUCTRLNMIOnEnableDuringVblank(t *testing.T) {
	bus := &testBus{}
	p := New(bus)
	p.status |= STATUS_VERTICAL_BLANK

	p.WriteReg(0, CTRL_GENERATE_NMI)
	if bus.nmiCount != 1 {
		t.Errorf("nmiCount = %d, want 1 (enabling NMI during vblank fires immediately)", bus.nmiCount)
	}

	// Already enabled: writing the same value again must not re-fire.
	p.WriteReg(0, CTRL_GENERATE_NMI)
	if bus.nmiCount != 1 {
		t.Errorf("nmiCount = %d, want 1 (no edge on a redundant write)", bus.nmiCount)
	}
}

func TestWriteRegPPUSCROLLTwoWriteSequence(t *testing.T) {
	p := New(&testBus{})

	p.WriteReg(5, 0x7D) // 0111 1101: coarse X=15, fine X=5
	if got, want := p.fineX, uint8(5); got != want {
		t.Errorf("fineX = %d, want %d", got, want)
	}
	if got, want := p.t.coarseX(), uint16(15); got != want {
		t.Errorf("t.coarseX() = %d, want %d", got, want)
	}

	p.WriteReg(5, 0x5E) // 0101 1110: coarse Y=11, fine Y=6
	if got, want := p.t.coarseY(), uint16(11); got != want {
		t.Errorf("t.coarseY() = %d, want %d", got, want)
	}
	if got, want := p.t.fineY(), uint16(6); got != want {
		t.Errorf("t.fineY() = %d, want %d", got, want)
	}
}

func TestWriteRegPPUADDRTwoWriteLatchesV(t *testing.T) {
	p := New(&testBus{})

	p.WriteReg(6, 0x3F) // high byte
	if p.v.get() == p.t.get() && p.t.get() != 0 {
		t.Fatalf("v must not be latched from t until the second write")
	}
	p.WriteReg(6, 0x10) // low byte, latches v=t
	if got, want := p.v.get(), uint16(0x3F10); got != want {
		t.Errorf("v.get() = %#04x, want %#04x", got, want)
	}
}

func TestReadRegPPUSTATUSClearsVblankAndToggle(t *testing.T) {
	p := New(&testBus{})
	p.status |= STATUS_VERTICAL_BLANK
	p.writeToggle = true

	out := p.ReadReg(2)
	if out&STATUS_VERTICAL_BLANK == 0 {
		t.Error("PPUSTATUS read should still report the set bit it's about to clear")
	}
	if p.status&STATUS_VERTICAL_BLANK != 0 {
		t.Error("reading PPUSTATUS should clear vertical blank")
	}
	if p.writeToggle {
		t.Error("reading PPUSTATUS should reset the write-toggle latch")
	}
}

func TestPPUDATABufferedReadExceptPalette(t *testing.T) {
	bus := &testBus{}
	p := New(bus)

	p.write(0x2005, 0xAB) // nametable RAM, goes through the buffer
	p.v.data = 0x2005
	first := p.ReadReg(7)
	if first == 0xAB {
		t.Error("first PPUDATA read of non-palette space must return the stale buffer, not the fresh value")
	}
	second := p.ReadReg(7)
	_ = second

	p.write(0x3F05, 0x11) // palette RAM reads immediately, no buffering
	p.v.data = 0x3F05
	if got, want := p.ReadReg(7), uint8(0x11); got != want {
		t.Errorf("palette read = %#02x, want %#02x (unbuffered)", got, want)
	}
}

func TestTickSetsVblankAndFiresNMI(t *testing.T) {
	bus := &testBus{}
	p := New(bus)
	p.ctrl |= CTRL_GENERATE_NMI
	p.scanline, p.dot = 241, 1

	p.Tick(1)
	if p.status&STATUS_VERTICAL_BLANK == 0 {
		t.Error("vertical blank should be set at (241,1)")
	}
	if bus.nmiCount != 1 {
		t.Errorf("nmiCount = %d, want 1", bus.nmiCount)
	}
}

func TestTickClearsFlagsAtPreRender(t *testing.T) {
	p := New(&testBus{})
	p.status = STATUS_VERTICAL_BLANK | STATUS_SPRITE_0_HIT | STATUS_SPRITE_OVERFLOW
	p.scanline, p.dot = 261, 1

	p.Tick(1)
	if p.status != 0 {
		t.Errorf("status = %#02x, want 0 at (261,1)", p.status)
	}
}

func TestAdvanceDotSkipsLastDotOnOddFrameWhenRendering(t *testing.T) {
	p := New(&testBus{})
	p.mask = MASK_SHOW_BG
	p.scanline, p.dot = 261, 339
	p.frame = 1 // odd

	p.advanceDot()
	if p.scanline != 0 || p.dot != 0 {
		t.Errorf("scanline,dot = %d,%d, want 0,0 (dot 339 skipped on odd frame)", p.scanline, p.dot)
	}
}

func TestAdvanceDotDoesNotSkipOnEvenFrame(t *testing.T) {
	p := New(&testBus{})
	p.mask = MASK_SHOW_BG
	p.scanline, p.dot = 261, 339
	p.frame = 0 // even

	p.advanceDot()
	if p.scanline != 261 || p.dot != 340 {
		t.Errorf("scanline,dot = %d,%d, want 261,340", p.scanline, p.dot)
	}
}

func TestOAMDATAWriteAdvancesAddr(t *testing.T) {
	p := New(&testBus{})
	p.WriteReg(3, 0x10) // OAMADDR
	p.WriteReg(4, 0x42) // OAMDATA
	if got, want := p.ReadOAM(0x10), uint8(0x42); got != want {
		t.Errorf("oam[0x10] = %#02x, want %#02x", got, want)
	}
	if p.oamAddr != 0x11 {
		t.Errorf("oamAddr = %#02x, want 0x11", p.oamAddr)
	}
}
