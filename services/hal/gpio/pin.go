package gpio

import "gpiohal/errcode"

// Pin is a dynamically moded handle on one physical pin.
//
// The zero value is unbound; call Init before any other method.
type Pin struct {
	loc  Location
	mode Mode
}

// NewPin returns a Pin bound to loc and initialised in mode.
func NewPin(loc Location, mode Mode) *Pin {
	p := new(Pin)
	p.Init(loc, mode)
	return p
}

// Init binds p to loc and applies mode exactly as SetMode does, leaving
// the output latch low.
//
// The register block at loc must already be clocked.
func (p *Pin) Init(loc Location, mode Mode) {
	p.loc = loc
	p.SetMode(mode)
}

// SetMode applies the electrical configuration for mode, records it, and
// clears the output latch whatever the new mode is. A mode outside the
// defined set is ignored and leaves the pin untouched.
func (p *Pin) SetMode(mode Mode) {
	if !mode.Valid() {
		return
	}
	p.loc.Port.Configure(p.loc.Number, mode.Config())
	p.mode = mode
	p.loc.Port.Clear(p.loc.Number)
}

// Mode returns the last configured mode.
func (p *Pin) Mode() Mode { return p.mode }

// Location returns the pin this handle addresses.
func (p *Pin) Location() Location { return p.loc }

// Write sets the output latch. Ignored unless the pin is in ModeOutput.
func (p *Pin) Write(l Level) {
	if p.mode != ModeOutput {
		return
	}
	p.drive(l)
}

// Toggle complements the output latch (not the input sample), so it stays
// well defined while another driver holds the line. Ignored unless the pin
// is in ModeOutput.
func (p *Pin) Toggle() {
	if p.mode != ModeOutput {
		return
	}
	p.drive(!Level(p.loc.Port.Output(p.loc.Number)))
}

// Read returns the input latch in ModeInput and the output latch otherwise.
func (p *Pin) Read() Level {
	if p.mode == ModeInput {
		return Level(p.loc.Port.Input(p.loc.Number))
	}
	return Level(p.loc.Port.Output(p.loc.Number))
}

// TryWrite is Write that reports errcode.WrongMode instead of ignoring a
// write to a pin that is not an output.
func (p *Pin) TryWrite(l Level) error {
	if err := p.requireOutput("write"); err != nil {
		return err
	}
	p.drive(l)
	return nil
}

// TryToggle is Toggle that reports errcode.WrongMode on a non-output pin.
func (p *Pin) TryToggle() error {
	if err := p.requireOutput("toggle"); err != nil {
		return err
	}
	p.Toggle()
	return nil
}

func (p *Pin) requireOutput(op string) error {
	if p.mode == ModeOutput {
		return nil
	}
	return errcode.Wrap(errcode.WrongMode, op, p.loc.String()+" is "+p.mode.String())
}

func (p *Pin) drive(l Level) {
	if l {
		p.loc.Port.Set(p.loc.Number)
	} else {
		p.loc.Port.Clear(p.loc.Number)
	}
}
