package nes

import (
	"errors"
	"testing"
)

func TestNewMapperDispatchesSupportedIDs(t *testing.T) {
	for _, id := range []byte{0, 1, 2, 3, 4, 66} {
		card := NewCartridge(make([]byte, 0x8000), make([]byte, 0x2000), id, MirrorHorizontal)
		bus := &Bus{Card: card}
		m, err := NewMapper(card, bus)
		if err != nil {
			t.Fatalf("mapper %d: unexpected error %v", id, err)
		}
		if m == nil {
			t.Fatalf("mapper %d: got nil Mapper", id)
		}
	}
}

func TestNewMapperRejectsUnsupportedID(t *testing.T) {
	card := NewCartridge(make([]byte, 0x8000), make([]byte, 0x2000), 199, MirrorHorizontal)
	_, err := NewMapper(card, &Bus{Card: card})
	if !errors.Is(err, ErrUnsupportedMapper) {
		t.Fatalf("err = %v, want wrapping ErrUnsupportedMapper", err)
	}
}

func TestMapper0PRGMirrorsAcrossBankSize(t *testing.T) {
	prg := make([]byte, 0x4000) // one 16KB bank
	prg[0] = 0xaa
	prg[0x3fff] = 0xbb
	card := NewCartridge(prg, make([]byte, 0x2000), 0, MirrorHorizontal)
	m := NewMapper0(card)

	if got := m.Read(0x8000); got != 0xaa {
		t.Fatalf("Read($8000) = %#x, want 0xaa", got)
	}
	if got := m.Read(0xbfff); got != 0xbb {
		t.Fatalf("Read($bfff) = %#x, want 0xbb", got)
	}
	// A single 16KB bank mirrors into the upper half of the PRG window.
	if got := m.Read(0xc000); got != 0xaa {
		t.Fatalf("Read($c000) = %#x, want 0xaa (mirrored bank)", got)
	}
}

func TestMapper2SwitchesLowBankOnly(t *testing.T) {
	prg := make([]byte, 0x4000*4) // four 16KB banks
	for bank := 0; bank < 4; bank++ {
		prg[bank*0x4000] = byte(bank)
	}
	// last bank's marker so the fixed $c000 window can be checked
	prg[3*0x4000] = 0xff
	card := NewCartridge(prg, nil, 2, MirrorHorizontal)
	m := NewMapper2(card)

	m.Write(0x8000, 2)
	if got := m.Read(0x8000); got != 2 {
		t.Fatalf("Read($8000) after selecting bank 2 = %#x, want 2", got)
	}
	if got := m.Read(0xc000); got != 0xff {
		t.Fatalf("Read($c000) = %#x, want 0xff (fixed to last bank)", got)
	}
}
