package ppu

// renderStep drives the background fetcher, the v-register scroll
// increments, and sprite evaluation/fetch for one dot of a rendering
// scanline (0-239 visible, 261 pre-render). NESterpiece's captured
// ppu.cpp only tracks scanline/dot counters, not the fetch pipeline
// itself, so this follows the standard 2C02 dot-by-dot fetch timing
// directly.
func (p *PPU) renderStep() {
	d := p.dot

	switch {
	case d >= 1 && d <= 256:
		p.backgroundFetchAndShift(d)
		if d == 256 {
			p.v.incrementY()
			p.evaluateSprites()
		}
	case d == 257:
		p.v.copyHorizontal(p.t)
		p.fetchSpritePatterns()
	case d >= 321 && d <= 336:
		p.backgroundFetchAndShift(d)
	}

	if p.scanline == 261 && d >= 280 && d <= 304 {
		p.v.copyVertical(p.t)
	}
}

func (p *PPU) backgroundFetchAndShift(d int) {
	if (d >= 2 && d <= 257) || (d >= 322 && d <= 337) {
		p.shiftBackground()
	}

	switch m := d % 8; m {
	case 1:
		p.reloadShifters()
		addr := uint16(0x2000) | (p.v.get() & 0x0FFF)
		p.fetcher.nametableByte = p.read(addr)
	case 3:
		vv := p.v.get()
		addr := uint16(0x23C0) | (vv & 0x0C00) | ((vv >> 4) & 0x38) | ((vv >> 2) & 0x07)
		raw := p.read(addr)
		shift := ((vv >> 4) & 4) | (vv & 2)
		p.fetcher.attributeByte = (raw >> shift) & 0x03
	case 5:
		tile := uint16(p.fetcher.nametableByte)
		addr := p.bgPatternBase() | (tile << 4) | p.v.fineY()
		p.fetcher.patternAddr = addr
		p.fetcher.patternLow = p.read(addr)
	case 7:
		p.fetcher.patternHigh = p.read(p.fetcher.patternAddr + 8)
		p.v.incrementCoarseX()
	}
}

func (p *PPU) reloadShifters() {
	p.bgPatternLo = (p.bgPatternLo & 0xFF00) | uint16(p.fetcher.patternLow)
	p.bgPatternHi = (p.bgPatternHi & 0xFF00) | uint16(p.fetcher.patternHigh)

	var lo, hi uint16
	if p.fetcher.attributeByte&0x01 != 0 {
		lo = 0xFF
	}
	if p.fetcher.attributeByte&0x02 != 0 {
		hi = 0xFF
	}
	p.bgAttribLo = (p.bgAttribLo & 0xFF00) | lo
	p.bgAttribHi = (p.bgAttribHi & 0xFF00) | hi
}

func (p *PPU) shiftBackground() {
	p.bgPatternLo <<= 1
	p.bgPatternHi <<= 1
	p.bgAttribLo <<= 1
	p.bgAttribHi <<= 1
}

// backgroundPixelAt returns the 2-bit pattern index and 2-bit palette
// attribute selected by fine X, or (0, 0) if the background layer (or
// its left-8-pixel clip) hides this dot.
func (p *PPU) backgroundPixelAt(x int) (uint8, uint8) {
	if p.mask&MASK_SHOW_BG == 0 {
		return 0, 0
	}
	if x < 8 && p.mask&MASK_SHOW_BG_LEFT == 0 {
		return 0, 0
	}

	bit := uint(15 - p.fineX)
	p0 := uint8((p.bgPatternLo >> bit) & 1)
	p1 := uint8((p.bgPatternHi >> bit) & 1)
	a0 := uint8((p.bgAttribLo >> bit) & 1)
	a1 := uint8((p.bgAttribHi >> bit) & 1)
	return (p1 << 1) | p0, (a1 << 1) | a0
}

// renderPixel composes the background and sprite layers for the
// current (scanline, dot) and writes the resolved color into the
// framebuffer.
func (p *PPU) renderPixel() {
	x := p.dot - 1
	y := p.scanline

	bgPixel, bgPalette := p.backgroundPixelAt(x)
	sprPixel, sprPalette, sprPriority, sprIsZero := p.spritePixelAt(x)

	if bgPixel != 0 && sprPixel != 0 && sprIsZero && x >= 1 && x <= 254 {
		if (x >= 8) || (p.mask&(MASK_SHOW_BG_LEFT|MASK_SHOW_SPRITE_LEFT) == (MASK_SHOW_BG_LEFT | MASK_SHOW_SPRITE_LEFT)) {
			p.status |= STATUS_SPRITE_0_HIT
		}
	}

	var paletteAddr uint16
	switch {
	case bgPixel == 0 && sprPixel == 0:
		paletteAddr = PALETTE_RAM
	case bgPixel == 0:
		paletteAddr = PALETTE_RAM + 0x10 + uint16(sprPalette)*4 + uint16(sprPixel)
	case sprPixel == 0:
		paletteAddr = PALETTE_RAM + uint16(bgPalette)*4 + uint16(bgPixel)
	case sprPriority == 0:
		paletteAddr = PALETTE_RAM + 0x10 + uint16(sprPalette)*4 + uint16(sprPixel)
	default:
		paletteAddr = PALETTE_RAM + uint16(bgPalette)*4 + uint16(bgPixel)
	}

	idx := p.read(paletteAddr) & 0x3F
	p.pixels[y*NES_RES_WIDTH+x] = SYSTEM_PALETTE[idx]
}
