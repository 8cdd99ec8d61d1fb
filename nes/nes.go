package nes

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/golang/glog"
)

// LoadNESRom parses an iNES (.nes) file and builds the Cartridge it
// describes. NES 2.0 headers are rejected: spec.md scopes this core to the
// plain iNES format used by mappers {0,1,2,3,4,66}.
func LoadNESRom(path string) (*Cartridge, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRomMalformed, err)
	}
	defer file.Close()

	info, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRomMalformed, err)
	}
	return parseINES(info)
}

func parseINES(info []byte) (*Cartridge, error) {
	if len(info) < 16 || string(info[0:4]) != "NES\x1a" {
		return nil, fmt.Errorf("%w: missing iNES header", ErrRomMalformed)
	}

	prgNum := info[4] // 16KB PRG-ROM units
	chrNum := info[5] // 8KB CHR-ROM units

	flag6 := info[6]
	flag7 := info[7]

	if int8(flag7)&0x0c == 0x08 {
		return nil, fmt.Errorf("%w: NES 2.0 headers are not supported", ErrRomMalformed)
	}

	mirror := flag6 & 1
	if flag6&0x08 != 0 {
		mirror = MirrorFour
	}
	mapper := ((flag6 & 0xf0) >> 4) | (flag7 & 0xf0)

	offset := 16
	if flag6&0x04 != 0 {
		// 512-byte trainer precedes PRG-ROM
		offset += 512
	}

	prgSize := int(prgNum) * 16384
	if offset+prgSize > len(info) {
		return nil, fmt.Errorf("%w: PRG-ROM truncated", ErrRomMalformed)
	}
	prg := make([]byte, prgSize)
	copy(prg, info[offset:offset+prgSize])
	offset += prgSize

	chrSize := int(chrNum) * 8192
	chr := make([]byte, chrSize)
	if chrSize > 0 {
		if offset+chrSize > len(info) {
			return nil, fmt.Errorf("%w: CHR-ROM truncated", ErrRomMalformed)
		}
		copy(chr, info[offset:offset+chrSize])
	}

	glog.Infof("rom loaded: prg=%dx16KB chr=%dx8KB mapper=%d mirror=%d", prgNum, chrNum, mapper, mirror)
	return NewCartridge(prg, chr, mapper, mirror), nil
}
