package nes

import "testing"

func newMMC3Machine(t *testing.T) (*Bus, *Mapper4) {
	t.Helper()
	prg := make([]byte, 0x8000*4) // 4 banks worth, plenty for the fixed $8000 PRG window
	prg[0x3ffc], prg[0x3ffd] = 0x00, 0x80
	card := NewCartridge(prg, make([]byte, 0x2000), 4, MirrorHorizontal)
	bus, err := newMachine(card)
	if err != nil {
		t.Fatalf("newMachine: %v", err)
	}
	bus.Reset()
	m, ok := bus.Mapper.(*Mapper4)
	if !ok {
		t.Fatalf("bus.Mapper is %T, want *Mapper4", bus.Mapper)
	}
	return bus, m
}

func TestMapper4IRQFiresWhenCounterReachesZero(t *testing.T) {
	bus, m := newMMC3Machine(t)
	bus.CPU.I = 0

	m.setIRQLatch(4)
	m.setIRQReload(0) // forces the next decrement to reload from `reload`
	m.setIRQEnable(0)

	m.StepScanLineCounter() // timerValue==0 -> reloads to 4, no IRQ yet
	if bus.CPU.interrupt == interruptIRQ {
		t.Fatalf("IRQ fired on the reload tick, before the counter actually reached zero")
	}
	for i := 0; i < 3; i++ {
		m.StepScanLineCounter()
		if bus.CPU.interrupt == interruptIRQ {
			t.Fatalf("IRQ fired early, after only %d decrements", i+1)
		}
	}
	m.StepScanLineCounter() // 4th decrement: timerValue hits zero
	if bus.CPU.interrupt != interruptIRQ {
		t.Fatalf("CPU.interrupt = %d, want interruptIRQ once the reload counter reaches zero", bus.CPU.interrupt)
	}
}

func TestMapper4IRQDisableSuppressesIRQ(t *testing.T) {
	bus, m := newMMC3Machine(t)
	bus.CPU.I = 0

	m.setIRQLatch(1)
	m.setIRQReload(0)
	m.setIRQDisable(0)

	m.StepScanLineCounter() // reload to 1
	m.StepScanLineCounter() // decrements to 0, would fire if enabled
	if bus.CPU.interrupt == interruptIRQ {
		t.Fatalf("IRQ fired despite setIRQDisable()")
	}
	if m.IRQAsserted() {
		t.Fatalf("IRQAsserted() = true despite setIRQDisable()")
	}
}

func TestMapper4IRQDisableAcksPendingIRQ(t *testing.T) {
	bus, m := newMMC3Machine(t)
	bus.CPU.I = 0

	m.setIRQLatch(1)
	m.setIRQReload(0)
	m.setIRQEnable(0)

	m.StepScanLineCounter() // reload to 1
	m.StepScanLineCounter() // decrements to 0, fires
	if !m.IRQAsserted() {
		t.Fatalf("IRQAsserted() = false, want true right after the counter reaches zero")
	}

	m.setIRQDisable(0)
	if m.IRQAsserted() {
		t.Fatalf("setIRQDisable() should ack a pending IRQ, but IRQAsserted() is still true")
	}
}
