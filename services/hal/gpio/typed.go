package gpio

// Direction-typed handles. Each wraps a *Pin; converting with one of the
// Into* methods reconfigures the pin and returns the new handle. The old
// handle must not be used afterwards: it still addresses the same pin and
// any Write or Toggle through it is ignored by the new mode.

// Function selects how an alternate-function pin is routed.
type Function uint8

const (
	FuncOut   Function = iota // peripheral output (e.g. serial TX)
	FuncIn                    // peripheral input (e.g. serial RX)
	FuncInOut                 // bidirectional open-drain (e.g. I2C SDA)
)

func (f Function) mode() Mode {
	switch f {
	case FuncIn:
		return ModePeriphIn
	case FuncInOut:
		return ModePeriphInOut
	default:
		return ModePeriphOut
	}
}

type handle struct{ p *Pin }

// Location returns the pin this handle addresses.
func (h handle) Location() Location { return h.p.loc }

// IntoInput reconfigures the pin as a digital input.
func (h handle) IntoInput() Input {
	h.p.SetMode(ModeInput)
	return Input{h}
}

// IntoOutput reconfigures the pin as a push-pull output driven low.
func (h handle) IntoOutput() Output {
	h.p.SetMode(ModeOutput)
	return Output{h}
}

// IntoPeriph routes the pin to a peripheral.
func (h handle) IntoPeriph(fn Function) Periph {
	h.p.SetMode(fn.mode())
	return Periph{h, fn}
}

// IntoAnalog disconnects the digital path.
func (h handle) IntoAnalog() Analog {
	h.p.SetMode(ModeAnalog)
	return Analog{h}
}

// Output is a pin configured as a general-purpose output.
type Output struct{ handle }

// NewOutput initialises loc as an output, driven low.
func NewOutput(loc Location) Output { return Output{handle{NewPin(loc, ModeOutput)}} }

func (o Output) Write(l Level) { o.p.Write(l) }
func (o Output) High()         { o.p.Write(High) }
func (o Output) Low()          { o.p.Write(Low) }
func (o Output) Toggle()       { o.p.Toggle() }

// Read returns the level the pin is driving.
func (o Output) Read() Level { return o.p.Read() }

// Input is a pin configured as a digital input.
type Input struct{ handle }

// NewInput initialises loc as an input.
func NewInput(loc Location) Input { return Input{handle{NewPin(loc, ModeInput)}} }

// Read samples the external line.
func (i Input) Read() Level { return i.p.Read() }

// Periph is a pin routed to a peripheral.
type Periph struct {
	handle
	fn Function
}

// NewPeriph initialises loc in the alternate-function mode for fn.
func NewPeriph(loc Location, fn Function) Periph {
	return Periph{handle{NewPin(loc, fn.mode())}, fn}
}

func (p Periph) Function() Function { return p.fn }

// Read returns the output latch, which the peripheral does not drive.
func (p Periph) Read() Level { return p.p.Read() }

// Analog is a pin with its digital path disabled.
type Analog struct{ handle }

// NewAnalog initialises loc in analog mode.
func NewAnalog(loc Location) Analog { return Analog{handle{NewPin(loc, ModeAnalog)}} }
