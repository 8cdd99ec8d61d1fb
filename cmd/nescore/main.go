package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"

	"nescore/host"
	"nescore/nes"
)

func main() {
	romPath := flag.String("rom", "", "path to an iNES (.nes) ROM file")
	mute := flag.Bool("mute", false, "disable audio output")
	scale := flag.Int("scale", 2, "integer window scale factor")
	flag.Parse()

	if *romPath == "" {
		glog.Fatal("nescore: -rom is required")
	}

	machine, err := nes.NewMachine(*romPath)
	if err != nil {
		glog.Fatalf("nescore: failed to load %s: %v", *romPath, err)
	}

	if *mute {
		// the emulation thread still pushes samples into the bounded audio
		// ring buffer and blocks once it fills, so something must keep
		// draining it even with sound off.
		go func() {
			for {
				if _, ok := machine.PollAudioSample(); !ok {
					return
				}
			}
		}()
	} else {
		if err := portaudio.Initialize(); err != nil {
			glog.Fatalf("nescore: failed to initialize audio: %v", err)
		}
		defer portaudio.Terminate()

		audio := host.NewAudio(machine)
		host.MustStart(audio)
		defer audio.Stop()
	}

	host.OpenWindow(machine, *scale)
}
