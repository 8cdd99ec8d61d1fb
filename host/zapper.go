package host

import (
	"image"
	"time"

	"fyne.io/fyne"
	"fyne.io/fyne/canvas"

	"nescore/nes"
)

// zapperSurface is the canvas the frame buffer is painted on. Embedding
// *canvas.Image gives it every fyne.CanvasObject method for free; adding
// Tapped makes it a fyne.Tappable, so mouse clicks on the rendered frame
// reach the machine's Zapper without a separate input widget.
type zapperSurface struct {
	*canvas.Image
	machine *nes.Bus
	scale   int
}

func newZapperSurface(machine *nes.Bus, scale int) *zapperSurface {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 256*scale, 240*scale)))
	return &zapperSurface{Image: img, machine: machine, scale: scale}
}

func (s *zapperSurface) SetImage(img image.Image) {
	s.Image.Image = img
	canvas.Refresh(s.Image)
}

// Tapped implements fyne.Tappable. The zapper's trigger is momentary: a
// tap aims the gun at the tapped pixel, holds the trigger down for
// 100ms, then releases it, matching how a light gun pull reads on
// hardware.
func (s *zapperSurface) Tapped(ev *fyne.PointEvent) {
	x := int(ev.Position.X) / s.scale
	y := int(ev.Position.Y) / s.scale
	s.machine.Zapper.AimAt(x, y)
	s.machine.Zapper.SetTrigger(true)
	go func() {
		time.Sleep(100 * time.Millisecond)
		s.machine.Zapper.SetTrigger(false)
	}()
}
