// Package snapshot gives host tooling (cmd/inspect, tests) a read-only,
// copyable view of machine state without reaching into mos6502/ppu
// internals. It mirrors the register/PPU state a debugger would read
// back after halting the machine.
package snapshot

import (
	"fmt"
	"strings"

	"github.com/kbrandt/nescore/mos6502"
	"github.com/kbrandt/nescore/ppu"
)

// Snapshot aggregates the CPU and PPU state at a single instant. Both
// halves are already plain value types (mos6502.Snapshot, ppu.Snapshot),
// so copying a Snapshot never aliases live emulator state.
type Snapshot struct {
	CPU   mos6502.Snapshot
	PPU   ppu.Snapshot
	Cycle uint64
}

// Machine is the subset of console.Core a Snapshot needs to capture
// itself from, kept narrow so this package doesn't import console and
// create a cycle.
type Machine interface {
	CPUSnapshot() mos6502.Snapshot
	PPUSnapshot() ppu.Snapshot
}

// Capture reads the current state of m. The returned Snapshot is safe
// to retain after m continues running.
func Capture(m Machine) Snapshot {
	cpu := m.CPUSnapshot()
	return Snapshot{
		CPU:   cpu,
		PPU:   m.PPUSnapshot(),
		Cycle: cpu.Cycles,
	}
}

var statusFlags = []struct {
	mask uint8
	name byte
}{
	{0x80, 'N'}, {0x40, 'V'}, {0x20, '_'}, {0x10, 'B'},
	{0x08, 'D'}, {0x04, 'I'}, {0x02, 'Z'}, {0x01, 'C'},
}

// FlagString renders the 6502 processor status byte as the classic
// NV_BDIZC letter row, lowercasing cleared bits.
func FlagString(p uint8) string {
	var b strings.Builder
	for _, f := range statusFlags {
		c := f.name
		if p&f.mask == 0 && c >= 'A' && c <= 'Z' {
			c = c - 'A' + 'a'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// String renders a one-line register/PPU summary suitable for a
// debugger status line.
func (s Snapshot) String() string {
	return fmt.Sprintf(
		"PC:%04X A:%02X X:%02X Y:%02X SP:%02X P:%s  |  scan:%d dot:%d frame:%d  |  cycle:%d",
		s.CPU.PC, s.CPU.A, s.CPU.X, s.CPU.Y, s.CPU.SP, FlagString(s.CPU.P),
		s.PPU.Scanline, s.PPU.Dot, s.PPU.Frame, s.Cycle,
	)
}
