// Package sim is a register-level simulation of the STM32F3 GPIO blocks
// and their RCC clock gates, used on host builds and in tests.
//
// An unclocked block ignores register writes and reads back zero, which is
// one concrete outcome of the undefined behaviour real silicon shows.
package sim

import (
	"sync"

	"gpiohal/services/hal/board"
	"gpiohal/services/hal/gpio"
)

// Chip holds the clock controller and every GPIO block.
type Chip struct {
	rcc   *RCC
	ports [6]*Port
}

// NewChip returns a chip in its reset state with every gate closed.
func NewChip() *Chip {
	c := &Chip{rcc: &RCC{}}
	for i := range c.ports {
		c.ports[i] = newPort(gpio.PortID(i), c.rcc)
	}
	return c
}

// RCC returns the chip's clock controller.
func (c *Chip) RCC() *RCC { return c.rcc }

// Port returns the register block id.
func (c *Chip) Port(id gpio.PortID) (*Port, bool) {
	if !id.Valid() || int(id) >= len(c.ports) {
		return nil, false
	}
	return c.ports[id], true
}

// RCC simulates the reset and clock control block.
type RCC struct {
	mu        sync.Mutex
	gates     uint32
	sysInits  int
	sysErr    error
	enableLog []board.Peripheral
}

var _ board.ClockController = (*RCC)(nil)

// FailSystemInit makes the next SystemInit calls return err (nil clears).
func (r *RCC) FailSystemInit(err error) {
	r.mu.Lock()
	r.sysErr = err
	r.mu.Unlock()
}

func (r *RCC) SystemInit() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sysInits++
	return r.sysErr
}

func (r *RCC) Enable(p board.Peripheral) {
	r.mu.Lock()
	r.gates |= 1 << p
	r.enableLog = append(r.enableLog, p)
	r.mu.Unlock()
}

func (r *RCC) Enabled(p board.Peripheral) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gates&(1<<p) != 0
}

// SystemInits returns how many times SystemInit ran.
func (r *RCC) SystemInits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sysInits
}

// EnableLog returns every Enable call in order.
func (r *RCC) EnableLog() []board.Peripheral {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]board.Peripheral(nil), r.enableLog...)
}
