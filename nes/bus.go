package nes

import (
	"image"
	"sync"
)

/**
这个模块作为cpu/ppu/apu/mapper/card/RAM的封装, 按PPU:CPU=3:1的比例驱动时钟,
聚合中断并把APU采样送进一个有界的环形缓冲区给音频线程消费
*/

const audioBufferCapacity = 4096

type Bus struct {
	CPU         *CPU
	APU         *APU
	PPU         *PPU
	Card        *Cartridge
	Controller1 *Controller
	Controller2 *Controller
	Zapper      *Zapper
	Mapper      Mapper
	RAM         []byte

	clock uint64

	audioMu     sync.Mutex
	audioCond   *sync.Cond
	audioSample [audioBufferCapacity]float32
	audioHead   int
	audioTail   int
	audioCount  int
	audioClosed bool
}

// NewMachine loads the ROM at path and wires a complete system around it:
// CPU, PPU, APU and the mapper the cartridge's header selects.
func NewMachine(path string) (*Bus, error) {
	card, err := LoadNESRom(path)
	if err != nil {
		return nil, err
	}
	return newMachine(card)
}

func newMachine(card *Cartridge) (*Bus, error) {
	bus := &Bus{
		Card:        card,
		RAM:         make([]byte, 2048),
		Controller1: NewController(1),
		Controller2: NewController(2),
	}
	bus.audioCond = sync.NewCond(&bus.audioMu)

	mapper, err := NewMapper(card, bus)
	if err != nil {
		return nil, err
	}
	bus.Mapper = mapper

	bus.CPU = NewCPU(bus)
	bus.PPU = NewPPU(bus)
	bus.APU = NewAPU(bus)
	bus.Zapper = NewZapper(bus.PPU)
	bus.APU.outputWork = bus.enqueueAudioSample

	return bus, nil
}

func (bus *Bus) Reset() {
	bus.CPU.Reset()
	bus.PPU.Reset()
	bus.APU.Reset()
	bus.Mapper.Reset()
	bus.Controller1.Reset()
	bus.Controller2.Reset()
	bus.clock = 0
	bus.resetAudioBuffer()
}

// Tick advances the whole machine by one PPU dot: the PPU and cartridge
// mapper are clocked every dot, the CPU and APU once every three dots, the
// classic NTSC 3:1 PPU:CPU ratio. It returns true on dots where the CPU
// itself advanced, so a caller driving a fixed number of CPU cycles can
// count them.
func (bus *Bus) Tick() bool {
	bus.PPU.Step()
	bus.Mapper.Step()

	cpuClocked := false
	if bus.clock%3 == 0 {
		bus.CPU.Clock()
		bus.APU.Step()
		cpuClocked = true
	}
	bus.clock++
	return cpuClocked
}

// Step runs the machine until at least one new CPU instruction has been
// dispatched and fully drained (including any DMA/DMC stall it triggers),
// and returns the number of CPU cycles that took. This is the coarser
// granularity the rest of this core's tests and StepSeconds drive it at;
// Tick is the finer one, called once per PPU dot.
func (bus *Bus) Step() int64 {
	startCycles := bus.CPU.Cycles
	startInstructions := bus.CPU.instructions
	for {
		bus.Tick()
		dispatched := bus.CPU.instructions != startInstructions
		if dispatched && bus.CPU.remaining == 0 && bus.CPU.stall == 0 {
			break
		}
	}
	return int64(bus.CPU.Cycles - startCycles)
}

func (bus *Bus) StepSeconds(seconds float64) {
	cycles := int64(CPUFrequency * seconds)
	for cycles > 0 {
		cycles -= bus.Step()
	}
}

func (bus *Bus) SetButton1(buttons [8]bool) {
	bus.Controller1.SetButtons(buttons)
}

func (bus *Bus) SetButton2(buttons [8]bool) {
	bus.Controller2.SetButtons(buttons)
}

// readPort2 serves a $4017 read: the zapper and the second standard
// controller share this port on real hardware, so whichever peripheral is
// attached decides what comes back.
func (bus *Bus) readPort2() byte {
	data := bus.Controller2.Read() & 0x01
	if bus.Zapper != nil {
		data |= bus.Zapper.Read()
	}
	return data
}

// Buffer returns the last frame the PPU completed (it draws into a
// separate back buffer and swaps the two at VBlank). Call
// PPU.CopyFrame instead when reading from a goroutine other than the one
// driving Tick/Step.
func (bus *Bus) Buffer() *image.RGBA {
	return bus.PPU.front
}

func (bus *Bus) enqueueAudioSample(sample float32) {
	bus.audioMu.Lock()
	defer bus.audioMu.Unlock()
	for bus.audioCount == audioBufferCapacity && !bus.audioClosed {
		bus.audioCond.Wait()
	}
	if bus.audioClosed {
		return
	}
	bus.audioSample[bus.audioTail] = sample
	bus.audioTail = (bus.audioTail + 1) % audioBufferCapacity
	bus.audioCount++
	bus.audioCond.Signal()
}

// PollAudioSample blocks until a 44.1kHz sample is available and returns
// it. Meant to be called from the host's audio callback goroutine, never
// from the one driving Tick/Step.
func (bus *Bus) PollAudioSample() (float32, bool) {
	bus.audioMu.Lock()
	defer bus.audioMu.Unlock()
	for bus.audioCount == 0 && !bus.audioClosed {
		bus.audioCond.Wait()
	}
	if bus.audioCount == 0 {
		return 0, false
	}
	sample := bus.audioSample[bus.audioHead]
	bus.audioHead = (bus.audioHead + 1) % audioBufferCapacity
	bus.audioCount--
	bus.audioCond.Signal()
	return sample, true
}

// CloseAudio unblocks any goroutine parked in PollAudioSample or
// enqueueAudioSample, for a clean host shutdown.
func (bus *Bus) CloseAudio() {
	bus.audioMu.Lock()
	defer bus.audioMu.Unlock()
	bus.audioClosed = true
	bus.audioCond.Broadcast()
}

func (bus *Bus) resetAudioBuffer() {
	bus.audioMu.Lock()
	defer bus.audioMu.Unlock()
	bus.audioHead, bus.audioTail, bus.audioCount = 0, 0, 0
}
