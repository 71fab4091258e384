package console

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOAMDMACopiesPage(t *testing.T) {
	b := newTestBus(t)

	src := uint16(0x0200)
	for i := 0; i < 256; i++ {
		b.ram[(src+uint16(i))&0x07FF] = uint8(i)
	}

	dma := &OAMDMA{}
	b.oamdma = dma
	dma.Start(0x02) // page 2 -> $0200, which mirrors into RAM

	for dma.Active() {
		dma.Step(b)
	}

	for i := 0; i < 256; i++ {
		require.Equal(t, uint8(i), b.ppu.ReadOAM(uint8(i)), "byte %d copied into OAM", i)
	}
}

func TestOAMDMAAlignedVsUnaligned(t *testing.T) {
	b := newTestBus(t)

	aligned := &OAMDMA{putCycle: false}
	aligned.Start(0x00)
	n := 0
	for aligned.Active() {
		aligned.Step(b)
		n++
	}
	require.Equal(t, 513, n, "DMA started on a get cycle takes 513 cycles")

	unaligned := &OAMDMA{putCycle: true}
	unaligned.Start(0x00)
	n = 0
	for unaligned.Active() {
		unaligned.Step(b)
		n++
	}
	require.Equal(t, 514, n, "DMA started on a put cycle costs one extra alignment cycle")
}

func TestOAMDMAUnconditionalParityTracking(t *testing.T) {
	b := newTestBus(t)
	dma := &OAMDMA{}

	dma.Step(b) // putCycle: false -> true
	require.True(t, dma.putCycle)
	dma.Step(b) // putCycle: true -> false
	require.False(t, dma.putCycle)

	dma.Start(0x00)
	require.Zero(t, dma.alignment, "starting on a tracked get cycle needs no alignment")
}
