package nes

import "testing"

func TestCPURAMMirroring(t *testing.T) {
	bus := newTestMachine(t, 0xea)
	mem := NewCPUMemory(bus)

	mem.Write(0x0001, 0x55)
	for _, mirror := range []uint16{0x0001, 0x0801, 0x1001, 0x1801} {
		if got := mem.Read(mirror); got != 0x55 {
			t.Errorf("Read(%#x) = %#x, want 0x55 (mirror of $0001)", mirror, got)
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	bus := newTestMachine(t, 0xea)
	mem := NewCPUMemory(bus)

	// $2000-$3FFF mirrors the 8 PPU registers every 8 bytes; write OAMADDR
	// ($2003) through a mirror and confirm the PPU actually saw it.
	mem.Write(0x2003, 0x10)
	if bus.PPU.oamAddress != 0x10 {
		t.Fatalf("PPU.oamAddress = %#x, want 0x10", bus.PPU.oamAddress)
	}
	mem.Write(0x200b, 0x20) // 0x200b mirrors 0x2003 (0x200b % 8 == 3)
	if bus.PPU.oamAddress != 0x20 {
		t.Fatalf("PPU.oamAddress via mirrored register = %#x, want 0x20", bus.PPU.oamAddress)
	}
}
