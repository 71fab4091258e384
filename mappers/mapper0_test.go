package mappers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kbrandt/nescore/nesrom"
)

func writeNROM(t *testing.T, prgBlocks, chrBlocks, flags6 uint8) *nesrom.ROM {
	t.Helper()

	prgSize := int(prgBlocks) * nesrom.PRG_BLOCK_SIZE
	chrSize := int(chrBlocks) * nesrom.CHR_BLOCK_SIZE
	buf := make([]byte, 16+prgSize+chrSize)
	copy(buf[0:4], []byte("NES\x1A"))
	buf[4] = prgBlocks
	buf[5] = chrBlocks
	buf[6] = flags6

	// Mark the last byte of PRG ROM so mirroring can be verified.
	if prgSize > 0 {
		buf[16+prgSize-1] = 0x42
	}

	path := filepath.Join(t.TempDir(), "rom.nes")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("couldn't write fixture ROM: %v", err)
	}

	rom, err := nesrom.New(path)
	if err != nil {
		t.Fatalf("couldn't parse fixture ROM: %v", err)
	}
	return rom
}

func TestMapper0PrgMirroring(t *testing.T) {
	rom := writeNROM(t, 1, 1, 0)

	m, err := Get(rom)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if got, want := m.PrgRead(0xBFFF), uint8(0x42); got != want {
		t.Errorf("PrgRead(0xBFFF) = %#02x, want %#02x", got, want)
	}
	if got, want := m.PrgRead(0xFFFF), uint8(0x42); got != want {
		t.Errorf("PrgRead(0xFFFF) = %#02x, want %#02x (mirrored bank)", got, want)
	}
}

func TestMapper0PrgRAM(t *testing.T) {
	rom := writeNROM(t, 2, 1, nesrom.BATTERY_BACKED_SRAM)

	m, err := Get(rom)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	m.PrgWrite(0x6000, 0x99)
	if got, want := m.PrgRead(0x6000), uint8(0x99); got != want {
		t.Errorf("PrgRead(0x6000) after write = %#02x, want %#02x", got, want)
	}
}

func TestMapper0ChrRAM(t *testing.T) {
	rom := writeNROM(t, 1, 0, 0)

	m, err := Get(rom)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	m.ChrWrite(0x0010, 0x7)
	if got, want := m.ChrRead(0x0010), uint8(0x7); got != want {
		t.Errorf("ChrRead(0x10) after write = %d, want %d (CHR RAM should be writable)", got, want)
	}
}

func TestGetUnknownMapper(t *testing.T) {
	// Mapper number is derived from flags6/flags7's upper nibbles; 255
	// isn't registered anywhere in this repo.
	buf := make([]byte, 16+nesrom.PRG_BLOCK_SIZE+nesrom.CHR_BLOCK_SIZE)
	copy(buf[0:4], []byte("NES\x1A"))
	buf[4] = 1
	buf[5] = 1
	buf[6] = 0xF0 // mapper low nibble 0xF
	buf[7] = 0xF0 // mapper high nibble 0xF -> mapper 255

	path := filepath.Join(t.TempDir(), "unknown.nes")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("couldn't write fixture ROM: %v", err)
	}
	rom, err := nesrom.New(path)
	if err != nil {
		t.Fatalf("couldn't parse fixture ROM: %v", err)
	}

	if _, err := Get(rom); err == nil {
		t.Error("Get() on an unregistered mapper id returned no error")
	}
}
