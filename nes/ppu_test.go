package nes

import "testing"

func TestPPUDataIncrementsByOneOrThirtyTwo(t *testing.T) {
	bus := newTestMachine(t, 0xea)
	ppu := bus.PPU

	ppu.writeControl(0x00) // increment by 1
	ppu.writeAddress(0x23)
	ppu.writeAddress(0x00) // v = $2300, a nametable address
	before := ppu.v
	ppu.writeData(0x11)
	if ppu.v != before+1 {
		t.Fatalf("v after writeData with increment=1 = %#x, want %#x", ppu.v, before+1)
	}

	ppu.writeControl(0x04) // increment by 32
	before = ppu.v
	ppu.writeData(0x22)
	if ppu.v != before+32 {
		t.Fatalf("v after writeData with increment=32 = %#x, want %#x", ppu.v, before+32)
	}
}

func TestPPUDataReadIsBufferedExceptForPalette(t *testing.T) {
	bus := newTestMachine(t, 0xea)
	ppu := bus.PPU

	ppu.writeControl(0x00)
	ppu.writeAddress(0x23)
	ppu.writeAddress(0x00)
	ppu.writeData(0xAB)

	// re-point v back at the byte just written; the first readData()
	// returns the stale buffered value, not the fresh one.
	ppu.writeAddress(0x23)
	ppu.writeAddress(0x00)
	first := ppu.readData()
	if first == 0xAB {
		t.Fatalf("readData() returned the fresh value immediately; PPUDATA reads below $3F00 should be buffered by one read")
	}
	second := ppu.readData()
	if second != 0xAB {
		t.Fatalf("readData() after the buffering delay = %#x, want 0xAB", second)
	}

	// palette reads are never buffered
	ppu.WritePalette(0x05, 0x3C)
	ppu.writeAddress(0x3f)
	ppu.writeAddress(0x05)
	if got := ppu.readData(); got != 0x3C {
		t.Fatalf("readData() over a palette address = %#x, want immediate 0x3C (unbuffered)", got)
	}
}

func TestPPUPaletteMirrorsBackdropEntries(t *testing.T) {
	ppu := &PPU{}
	ppu.WritePalette(0x00, 0x0f)
	if got := ppu.ReadPalette(0x10); got != 0x0f {
		t.Fatalf("ReadPalette(0x10) = %#x, want 0x0f (mirrors 0x00)", got)
	}
}

func TestPPUStatusReadClearsVBlankAndLatch(t *testing.T) {
	bus := newTestMachine(t, 0xea)
	ppu := bus.PPU

	ppu.nmiOccurred = true
	ppu.w = 1
	status := ppu.readStatus()
	if status&0x80 == 0 {
		t.Fatalf("readStatus() = %#x, want bit 7 set while nmiOccurred was true", status)
	}
	if ppu.nmiOccurred {
		t.Fatalf("nmiOccurred still true after readStatus()")
	}
	if ppu.w != 0 {
		t.Fatalf("address latch w = %d after readStatus(), want 0", ppu.w)
	}
}
