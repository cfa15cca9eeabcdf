//go:build !stm32f303

package platform

import (
	"gpiohal/services/hal/board"
	"gpiohal/services/hal/gpio"
	"gpiohal/services/hal/internal/sim"
)

// Host builds run against a simulated chip.
var chip = sim.NewChip()

// Clocks returns the chip's clock controller.
func Clocks() board.ClockController { return chip.RCC() }

// Port returns the register block id.
func Port(id gpio.PortID) (gpio.Port, bool) {
	p, ok := chip.Port(id)
	if !ok {
		return nil, false
	}
	return p, true
}

// Chip exposes the simulation so tests and demos can drive pads.
func Chip() *sim.Chip { return chip }
