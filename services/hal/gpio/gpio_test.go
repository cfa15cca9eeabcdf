package gpio_test

import (
	"testing"

	"gpiohal/services/hal/board"
	"gpiohal/services/hal/gpio"
	"gpiohal/services/hal/internal/sim"
)

// clockedPort returns block id of a fresh simulated chip with its gate open.
func clockedPort(t *testing.T, id gpio.PortID) *sim.Port {
	t.Helper()
	chip := sim.NewChip()
	chip.RCC().Enable(board.PortGate(id))
	p, ok := chip.Port(id)
	if !ok {
		t.Fatalf("no port %v", id)
	}
	return p
}

func at(p *sim.Port, n uint8) gpio.Location {
	return gpio.Location{Port: p, ID: p.ID(), Number: n}
}

// latchPort is a Port whose input and output latches are set independently
// by the test, recording every call.
type latchPort struct {
	in, out uint16
	cfg     map[uint8]gpio.Config
	calls   []string
}

func newLatchPort() *latchPort { return &latchPort{cfg: map[uint8]gpio.Config{}} }

func (l *latchPort) Set(n uint8) {
	l.out |= 1 << n
	l.calls = append(l.calls, "set")
}

func (l *latchPort) Clear(n uint8) {
	l.out &^= 1 << n
	l.calls = append(l.calls, "clear")
}

func (l *latchPort) Input(n uint8) bool {
	l.calls = append(l.calls, "input")
	return l.in&(1<<n) != 0
}

func (l *latchPort) Output(n uint8) bool {
	l.calls = append(l.calls, "output")
	return l.out&(1<<n) != 0
}

func (l *latchPort) Configure(n uint8, c gpio.Config) {
	l.cfg[n] = c
	l.calls = append(l.calls, "configure")
}
