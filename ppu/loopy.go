package ppu

// loopy struct will store v and t (loopy registers) and allow
// extracting and setting the various components as described below:
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
type loopy struct {
	data uint16 // only 15 bits used
}

func (l *loopy) coarseX() uint16 {
	return l.data & 0x001F
}

func (l *loopy) setCoarseX(n uint16) {
	l.data = (l.data & 0xFFE0) | n
}

// incrementCoarseX wraps at 31 and toggles the horizontal nametable
// bit on wrap, matching the PPU's "increment_x".
func (l *loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.setCoarseX(0)
		l.toggleNametableX()
	} else {
		l.data += 1
	}
}

func (l *loopy) coarseY() uint16 {
	return (l.data & 0x03E0) >> 5
}

func (l *loopy) incrementCoarseY() {
	l.data = ((l.coarseY() + 1) << 5) | (l.data & 0xFC1F)
}

func (l *loopy) setCoarseY(n uint16) {
	l.data = (l.data & 0xFC1F) | (uint16(n) << 5)
}

func (l *loopy) nametableX() uint16 {
	return (l.data & 0x0400) >> 10
}

func clearBit(n, pos uint16) uint16 {
	return n &^ (uint16(1) << (pos - 1))
}

func (l *loopy) toggleNametableX() {
	if l.nametableX() == 1 {
		l.data = clearBit(l.data, 11)
	} else {
		l.data |= (uint16(1) << 10)
	}
}

func (l *loopy) nametableY() uint16 {
	return (l.data & 0x0800) >> 11
}

func (l *loopy) toggleNametableY() {
	if l.nametableY() == 1 {
		l.data = clearBit(l.data, 12)
	} else {
		l.data |= (uint16(1) << 11)
	}
}

func (l *loopy) fineY() uint16 {
	return (l.data & 0x7000) >> 12
}

func (l *loopy) incrementFineY() {
	l.data = (l.data & 0x0FFF) | ((l.fineY() + 1) << 12)
}

// incrementY is the PPU's "increment_y": bump fine Y, and on fine Y
// overflow bump coarse Y with its own special-cased wrap (29 toggles
// the vertical nametable bit, 31 does not - both cases reset coarse Y
// to 0, since coarse Y can be set by software past the last valid row).
func (l *loopy) incrementY() {
	if l.fineY() == 7 {
		l.setFineY(0)
		switch l.coarseY() {
		case 29:
			l.setCoarseY(0)
			l.toggleNametableY()
		case 31:
			l.setCoarseY(0)
		default:
			l.incrementCoarseY()
		}
	} else {
		l.incrementFineY()
	}
}

func (l *loopy) setFineY(n uint16) {
	l.data = (l.data & 0x0FFF) | ((n & 0x0007) << 12)
}

func (l *loopy) setNametable(n uint16) {
	l.data = (l.data & 0xF3FF) | ((n & 0x0003) << 10)
}

func (l *loopy) get() uint16 {
	return l.data & 0x7FFF
}

// copyHorizontal copies o's coarse-X and horizontal nametable bit into
// l, per the PPU's "copy_x" at dot 257 of each rendering scanline.
func (l *loopy) copyHorizontal(o loopy) {
	const mask = 0x001F | 0x0400 // coarse X | nametable X
	l.data = (l.data &^ mask) | (o.data & mask)
}

// copyVertical copies o's fine Y, coarse Y and vertical nametable bit
// into l, per the PPU's "copy_y" during dots 280-304 of the pre-render
// scanline.
func (l *loopy) copyVertical(o loopy) {
	const mask = 0x7000 | 0x0800 | 0x03E0 // fine Y | nametable Y | coarse Y
	l.data = (l.data &^ mask) | (o.data & mask)
}
