// Package periphio exposes gpio pins through the periph.io connection
// interfaces so periph device drivers and gpioreg lookups can use them.
package periphio

import (
	"errors"
	"time"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"

	"gpiohal/services/hal/gpio"
)

var (
	errPull = errors.New("periphio: pull resistors are not supported")
	errEdge = errors.New("periphio: edge detection is not supported")
	errPWM  = errors.New("periphio: pwm is not supported")
)

// Pin adapts a *gpio.Pin to pgpio.PinIO. In and Out switch the underlying
// mode the way periph pins do; the pin itself keeps its silent-ignore
// rules for direct use.
type Pin struct {
	p *gpio.Pin
}

var _ pgpio.PinIO = (*Pin)(nil)

// Wrap returns the periph view of p.
func Wrap(p *gpio.Pin) *Pin { return &Pin{p: p} }

// Register wraps p and adds it to gpioreg under its location name.
func Register(p *gpio.Pin) (*Pin, error) {
	w := Wrap(p)
	if err := gpioreg.Register(w); err != nil {
		return nil, err
	}
	return w, nil
}

// Unwrap returns the underlying pin.
func (w *Pin) Unwrap() *gpio.Pin { return w.p }

// String implements conn.Resource.
func (w *Pin) String() string { return w.Name() }

// Halt implements conn.Resource. There is nothing in flight to stop.
func (w *Pin) Halt() error { return nil }

// Name implements pin.Pin.
func (w *Pin) Name() string { return w.p.Location().String() }

// Number implements pin.Pin: port index * 16 + pin number.
func (w *Pin) Number() int {
	loc := w.p.Location()
	return int(loc.ID)*gpio.PinsPerPort + int(loc.Number)
}

// Function implements pin.Pin.
func (w *Pin) Function() string {
	switch w.p.Mode() {
	case gpio.ModeInput:
		return "In/" + w.Read().String()
	case gpio.ModeOutput:
		return "Out/" + w.Read().String()
	default:
		return w.p.Mode().String()
	}
}

// In implements gpio.PinIn. The mode table has no pull resistors and edge
// detection is not provided, so only Float/PullNoChange with NoEdge work.
func (w *Pin) In(pull pgpio.Pull, edge pgpio.Edge) error {
	if pull != pgpio.Float && pull != pgpio.PullNoChange {
		return errPull
	}
	if edge != pgpio.NoEdge {
		return errEdge
	}
	if w.p.Mode() != gpio.ModeInput {
		w.p.SetMode(gpio.ModeInput)
	}
	return nil
}

// Read implements gpio.PinIn.
func (w *Pin) Read() pgpio.Level { return pgpio.Level(w.p.Read()) }

// WaitForEdge implements gpio.PinIn. Edges are never reported.
func (w *Pin) WaitForEdge(time.Duration) bool { return false }

// Pull implements gpio.PinIn.
func (w *Pin) Pull() pgpio.Pull { return pgpio.Float }

// DefaultPull implements gpio.PinIn.
func (w *Pin) DefaultPull() pgpio.Pull { return pgpio.Float }

// Out implements gpio.PinOut, switching the pin to output first if needed.
func (w *Pin) Out(l pgpio.Level) error {
	if w.p.Mode() != gpio.ModeOutput {
		w.p.SetMode(gpio.ModeOutput)
	}
	w.p.Write(gpio.Level(l))
	return nil
}

// PWM implements gpio.PinOut.
func (w *Pin) PWM(pgpio.Duty, physic.Frequency) error { return errPWM }
