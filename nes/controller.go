package nes

/*
Standard NES controller: an 8-bit parallel-to-serial shift register.
Writing the strobe line high (bit 0 set) rewinds the read position to
A; with it low each Read() returns the next button, A first. Reads
sample the live button state set by SetButtons; there is no separate
latch, so a SetButtons call in the middle of a read sequence shows up
in the bits not yet read:

bit:	7	6	5	4	3	2	1	0
button:	A	B	Select	Start	Up	Down	Left	Right

Port 1 is wired to $4016, port 2 to $4017 (which $4017 reads also OR
in whatever the zapper reports, see Bus.readPort2). A strobe write
hits both ports at once on real hardware, since $4016 is wired to
both controllers' latch pins in parallel.
*/

const (
	ButtonA = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

type Controller struct {
	// Port is the physical port number (1 or 2) Bus wired this controller
	// into; it never changes Read/Write behavior and nothing else in the
	// package reads it.
	Port byte

	buttons [8]bool
	index   byte
	strobe  byte
}

// NewController builds a controller plugged into the given port (1 or 2).
func NewController(port byte) *Controller {
	return &Controller{Port: port}
}

func (c *Controller) SetButtons(buttons [8]bool) {
	c.buttons = buttons
}

func (c *Controller) Read() byte {
	value := byte(0)
	if c.index < 8 && c.buttons[c.index] {
		value = 1
	}
	c.index++
	if c.strobe&1 == 1 {
		c.index = 0
	}
	return value
}

func (c *Controller) Write(value byte) {
	c.strobe = value
	if c.strobe&1 == 1 {
		c.index = 0
	}
}

// Reset restores power-on state: the shift register is reloaded from
// whatever buttons are currently held, same as a strobe-high write.
func (c *Controller) Reset() {
	c.index = 0
	c.strobe = 0
}
