package nes

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
)

// Save state layout: magic, format version, CRC32 of the component sections
// and clock counter (the fingerprint is not covered), the cartridge
// fingerprint the state was captured against, then one length-prefixed
// section per component. A blob whose magic doesn't
// match at all is assumed to predate this framing entirely and is handed to
// loadLegacyState, which reads it as raw, unframed CPU RAM followed by raw
// cartridge SRAM.
var stateMagic = [4]byte{'j', 'N', 'E', 'S'}

const stateVersion = 3

func appendUint16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func readUint16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func readUint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func readUint64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

func appendSection(buf []byte, section []byte) []byte {
	buf = appendUint32(buf, uint32(len(section)))
	return append(buf, section...)
}

func readSection(buf []byte) (section, rest []byte) {
	n := readUint32(buf[0:4])
	return buf[4 : 4+n], buf[4+n:]
}

// SaveState encodes the entire machine as a single portable blob: CPU, PPU,
// APU, cartridge (SRAM + mirroring), CPU RAM, and the shared clock counter.
// The blob is checksummed and tagged with the loaded cartridge's
// fingerprint so LoadState can refuse to apply it to a different ROM.
func (bus *Bus) SaveState() []byte {
	body := make([]byte, 0, 4096)
	body = appendSection(body, bus.CPU.saveState())
	body = appendSection(body, bus.PPU.saveState())
	body = appendSection(body, bus.APU.saveState())
	body = appendSection(body, bus.Card.saveState())
	body = appendSection(body, bus.RAM)
	body = appendUint64(body, bus.clock)

	out := make([]byte, 0, len(body)+16)
	out = append(out, stateMagic[:]...)
	out = appendUint16(out, stateVersion)
	crc := crc32.ChecksumIEEE(body)
	out = appendUint32(out, crc)
	out = appendUint32(out, bus.Card.Fingerprint)
	out = append(out, body...)
	return out
}

// LoadState restores a blob produced by SaveState. A blob whose magic
// doesn't match this format at all falls back to the raw, unframed legacy
// interpretation rather than being rejected outright. Once the magic is
// recognized, it refuses states made against a different cartridge
// (ErrStateForeign) and states that fail their checksum (ErrStateCorrupt).
func (bus *Bus) LoadState(data []byte) error {
	if len(data) < 6 || !bytes.Equal(data[0:4], stateMagic[:]) {
		return bus.loadLegacyState(data)
	}
	version := readUint16(data[4:6])
	if version != stateVersion {
		return ErrStateCorrupt
	}
	if len(data) < 14 {
		return ErrStateCorrupt
	}

	storedCRC := readUint32(data[6:10])
	fingerprint := readUint32(data[10:14])
	body := data[14:]
	if crc32.ChecksumIEEE(body) != storedCRC {
		return ErrStateCorrupt
	}
	if fingerprint != bus.Card.Fingerprint {
		return ErrStateForeign
	}

	cpuState, body := readSection(body)
	ppuState, body := readSection(body)
	apuState, body := readSection(body)
	cardState, body := readSection(body)
	ramState, body := readSection(body)
	if len(body) < 8 {
		return ErrStateCorrupt
	}

	bus.CPU.loadState(cpuState)
	bus.PPU.loadState(ppuState)
	bus.APU.loadState(apuState)
	bus.Card.loadState(cardState)
	copy(bus.RAM, ramState)
	bus.clock = readUint64(body[0:8])
	return nil
}

// loadLegacyState interprets data with no recognizable header as raw CPU
// RAM immediately followed by raw cartridge SRAM, with no length framing at
// all — the format this core's state files used before the jNES header was
// introduced.
func (bus *Bus) loadLegacyState(data []byte) error {
	if len(data) == 0 {
		return ErrStateCorrupt
	}
	n := copy(bus.RAM, data)
	if len(bus.Card.SRAM) > 0 && n < len(data) {
		copy(bus.Card.SRAM, data[n:])
	}
	return nil
}
