package snapshot

import (
	"testing"

	"github.com/kbrandt/nescore/mos6502"
	"github.com/kbrandt/nescore/ppu"
	"github.com/stretchr/testify/require"
)

type fakeMachine struct {
	cpu mos6502.Snapshot
	ppu ppu.Snapshot
}

func (m fakeMachine) CPUSnapshot() mos6502.Snapshot { return m.cpu }
func (m fakeMachine) PPUSnapshot() ppu.Snapshot     { return m.ppu }

func TestCaptureCopiesCycleFromCPU(t *testing.T) {
	m := fakeMachine{cpu: mos6502.Snapshot{PC: 0x8000, Cycles: 42}}
	s := Capture(m)
	require.Equal(t, uint16(0x8000), s.CPU.PC)
	require.Equal(t, uint64(42), s.Cycle)
}

func TestFlagStringUppercasesSetBits(t *testing.T) {
	require.Equal(t, "nv_bdizc", FlagString(0x00))
	require.Equal(t, "NV_BDIZC", FlagString(0xFF))
	require.Equal(t, "Nv_bdizc", FlagString(0x80))
}

func TestStringIncludesRegistersAndPPUPosition(t *testing.T) {
	s := Snapshot{
		CPU: mos6502.Snapshot{PC: 0xC000, A: 1, X: 2, Y: 3, SP: 0xFD, P: 0x24},
		PPU: ppu.Snapshot{Scanline: 100, Dot: 50, Frame: 7},
	}
	out := s.String()
	require.Contains(t, out, "PC:C000")
	require.Contains(t, out, "scan:100")
	require.Contains(t, out, "dot:50")
	require.Contains(t, out, "frame:7")
}
