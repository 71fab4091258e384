package console

import "github.com/kbrandt/nescore/ppu"

// OAMDMA implements the $4014 OAM-DMA engine: writing a page number
// there steals 513 or 514 CPU cycles (514 if the write happened on a
// put cycle) copying that page's 256 bytes into PPU OAM, alternating
// get/put cycles. Grounded on original_source/src/nes/oam.cpp's
// OAMDMA::start/step.
type OAMDMA struct {
	active      bool
	putCycle    bool
	alignment   uint8
	bytesLeft   uint16
	address     uint16
	data        uint8
	totalCycles uint64
}

// Active reports whether the DMA engine currently owns the bus,
// halting the CPU.
func (o *OAMDMA) Active() bool {
	return o.active || o.alignment > 0
}

// Start begins a transfer from page*0x100. If triggered on a put
// cycle, one extra alignment cycle is needed before the first real
// transfer cycle, giving the well-known 513/514-cycle split.
func (o *OAMDMA) Start(page uint8) {
	o.active = true
	o.address = uint16(page) << 8
	o.data = 0
	o.totalCycles = 1
	o.bytesLeft = 256
	if o.putCycle {
		o.alignment++
	}
}

// Step advances the engine by one CPU cycle. Core calls this every
// single cycle, active or not, so putCycle keeps tracking true bus
// parity across the gaps between transfers - not just while a
// transfer is in flight. When idle it only flips putCycle; it neither
// touches the bus nor ticks the PPU, since whichever of OAMDMA/CPU
// actually owns the cycle is responsible for that.
func (o *OAMDMA) Step(b *Bus) {
	wasActive := o.active || o.alignment > 0
	if wasActive {
		o.totalCycles++

		if o.alignment > 0 {
			o.alignment--
		} else if o.active {
			if o.bytesLeft == 0 {
				o.active = false
			} else if o.putCycle {
				b.ppu.WriteReg(ppu.OAMDATA, o.data)
				o.bytesLeft--
			} else {
				o.data = b.readNoTick(o.address)
				o.address++
			}
		}

		b.tickPPU()
	}
	o.putCycle = !o.putCycle
}
