//go:build stm32f303

package platform

import (
	"gpiohal/services/hal/board"
	"gpiohal/services/hal/gpio"
	"gpiohal/services/hal/internal/stm32f3"
)

func Clocks() board.ClockController { return stm32f3.Clocks{} }

func Port(id gpio.PortID) (gpio.Port, bool) {
	p, ok := stm32f3.PortFor(id)
	if !ok {
		return nil, false
	}
	return p, true
}
