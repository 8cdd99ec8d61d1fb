package nes

// Zapper is the NES light gun. It reports trigger state in bit 4 and
// light-sensor state in bit 3 of a $4017 read, the same port a second
// standard controller would occupy.
type Zapper struct {
	ppu *PPU

	targetX, targetY int
	withinScreen     bool
	triggerPressed   bool
}

const zapperLightThreshold = 180.0

func NewZapper(ppu *PPU) *Zapper {
	z := &Zapper{ppu: ppu}
	z.AimAt(128, 120)
	return z
}

// AimAt points the gun at a screen coordinate. Coordinates outside the
// visible 256x240 frame count as aimed off-screen: the light sensor never
// triggers there regardless of what's behind it.
func (z *Zapper) AimAt(x, y int) {
	z.withinScreen = x >= 0 && x < 256 && y >= 0 && y < 240
	z.targetX = clampInt(x, 0, 255)
	z.targetY = clampInt(y, 0, 239)
}

func (z *Zapper) SetTrigger(pressed bool) {
	z.triggerPressed = pressed
}

func (z *Zapper) Read() byte {
	var data byte
	if !z.detectLight() {
		data |= 0x08
	}
	if !z.triggerPressed {
		data |= 0x10
	}
	return data
}

func (z *Zapper) detectLight() bool {
	if !z.withinScreen {
		return false
	}
	c := z.ppu.front.RGBAAt(z.targetX, z.targetY)
	luminance := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return luminance >= zapperLightThreshold
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
