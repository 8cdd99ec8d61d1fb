/*
负责ui渲染，声音输出，接受控制的模块
*/

package host

import (
	"image"
	"time"

	"fyne.io/fyne"
	"fyne.io/fyne/app"
	"fyne.io/fyne/driver/desktop"

	"nescore/nes"
)

func keyParse(ev *fyne.KeyEvent) int {
	var index = -1
	switch ev.Name {
	// A
	case "J":
		index = 0
		// B
	case "K":
		index = 1
		// Select
	case "U":
		index = 2
		// Start
	case "I":
		index = 3
	case "W":
		index = 4
	case "S":
		index = 5
	case "A":
		index = 6
	case "D":
		index = 7
	}
	return index
}

var ctrl1 [8]bool

// OpenWindow drives the machine in a background goroutine, paints its
// frame buffer at roughly 60Hz, and routes keyboard/mouse input back into
// the running machine. scale controls how many screen pixels each NES
// pixel is drawn at.
func OpenWindow(machine *nes.Bus, scale int) {
	myApp := app.New()
	w := myApp.NewWindow("nescore")
	w.Resize(fyne.NewSize(float32(256*scale), float32(240*scale)))

	sink := &frameSink{}
	go RunMachine(machine, sink)

	surface := newZapperSurface(machine, scale)

	if deskCanvas, ok := w.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			index := keyParse(ev)
			if index < 0 {
				return
			}
			ctrl1[index] = true
			machine.SetButton1(ctrl1)
		})
		deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			index := keyParse(ev)
			if index < 0 {
				return
			}
			ctrl1[index] = false
			machine.SetButton1(ctrl1)
		})
	}

	go paint(surface, sink, scale)
	w.SetContent(surface)
	w.ShowAndRun()
}

// paint redraws the canvas from whatever frame the emulation thread last
// published to sink. It never touches Bus or the PPU directly — the
// snapshot sink hands back is immutable once published, so there is no
// framebuffer state shared with the emulation goroutine beyond that pointer
// handoff.
func paint(surface *zapperSurface, sink *frameSink, scale int) {
	for {
		// 模拟接近60fps的图像刷新率
		time.Sleep(time.Millisecond * 16)
		frame := sink.latest()
		if frame == nil {
			continue
		}
		var out image.Image = frame
		if scale > 1 {
			out = Resize(frame, 256, 240, scale)
		}
		surface.SetImage(out)
	}
}
