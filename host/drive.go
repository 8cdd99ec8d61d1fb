package host

import (
	"image"
	"sync"
	"time"

	"nescore/nes"
)

const frameInterval = time.Second / 60

// frameSink is the one piece of mutable state the emulation thread and the
// renderer share: a framebuffer snapshot published by value. The mutex
// guards only the pointer swap, never the pixels themselves — once
// published, a snapshot is never written to again.
type frameSink struct {
	mu    sync.Mutex
	frame *image.RGBA
}

func (s *frameSink) publish(frame *image.RGBA) {
	s.mu.Lock()
	s.frame = frame
	s.mu.Unlock()
}

func (s *frameSink) latest() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// RunMachine owns the Bus exclusively for as long as it runs: it ticks the
// emulation one PPU dot at a time and, the instant the PPU reports a
// completed frame, copies it into sink, acks the flag, then paces itself to
// a 16.667ms frame target by sleeping off whatever real time is left over.
// Meant to run on its own goroutine, separate from the one painting frames
// or feeding the audio callback — those only ever read sink, never Bus.
func RunMachine(machine *nes.Bus, sink *frameSink) {
	for {
		start := time.Now()

		for !machine.PPU.IsFrameComplete() {
			machine.Tick()
		}
		sink.publish(machine.PPU.CopyFrame())
		machine.PPU.ClearFrameFlag()

		if elapsed := time.Since(start); elapsed < frameInterval {
			time.Sleep(frameInterval - elapsed)
		}
	}
}
