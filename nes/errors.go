package nes

import "errors"

// Sentinel errors covering the taxonomy this core can report to its host:
// a malformed ROM image, a cartridge whose mapper isn't implemented, a
// save-state blob that fails its checksum, or one that was made against a
// different ROM than the one currently loaded.
var (
	ErrRomMalformed      = errors.New("nes: malformed rom image")
	ErrUnsupportedMapper = errors.New("nes: unsupported mapper")
	ErrStateCorrupt      = errors.New("nes: save state failed integrity check")
	ErrStateForeign      = errors.New("nes: save state was made against a different cartridge")
)
