package host

import (
	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"

	"nescore/nes"
)

// Audio streams the machine's decimated 44.1kHz samples to the default
// output device. One sample is pulled per frame and written to every
// output channel, so stereo output just repeats the mono sample across
// both channels.
type Audio struct {
	stream         *portaudio.Stream
	machine        *nes.Bus
	outputChannels int
}

func NewAudio(machine *nes.Bus) *Audio {
	return &Audio{machine: machine}
}

func (a *Audio) Start() error {
	api, err := portaudio.DefaultHostApi()
	if err != nil {
		return err
	}
	parameters := portaudio.HighLatencyParameters(nil, api.DefaultOutputDevice)
	stream, err := portaudio.OpenStream(parameters, a.callback)
	if err != nil {
		return err
	}
	a.stream = stream
	a.outputChannels = parameters.Output.Channels
	return stream.Start()
}

func (a *Audio) Stop() error {
	if a.stream == nil {
		return nil
	}
	a.machine.CloseAudio()
	return a.stream.Close()
}

func (a *Audio) callback(out []float32) {
	var sample float32
	for i := range out {
		if i%a.outputChannels == 0 {
			var ok bool
			sample, ok = a.machine.PollAudioSample()
			if !ok {
				sample = 0
			}
		}
		out[i] = sample
	}
}

// MustStart starts audio output and logs a fatal error on failure, mirroring
// how a desktop build that can't open an audio device should fail loudly
// rather than run silently.
func MustStart(a *Audio) {
	if err := a.Start(); err != nil {
		glog.Fatalf("host: failed to start audio output: %v", err)
	}
}
