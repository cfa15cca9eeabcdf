package hal

import (
	"gpiohal/services/hal/board"
	"gpiohal/services/hal/gpio"
)

// PinSetup assigns a bus name and an initial mode to one pin.
type PinSetup struct {
	Name   string
	Port   gpio.PortID
	Number uint8
	Mode   gpio.Mode
}

// Setup is what the HAL brings up: a board and the pins it serves.
type Setup struct {
	Board board.Descriptor
	Pins  []PinSetup
}

// DiscoveryF3Setup serves the eight user LEDs as outputs, the user button
// as an input, and routes both serial ports' TX/RX pins to their
// peripherals.
var DiscoveryF3Setup = discoveryF3Setup()

func discoveryF3Setup() Setup {
	d := board.DiscoveryF3
	s := Setup{Board: d}
	for _, led := range d.LEDs {
		s.Pins = append(s.Pins, PinSetup{Name: led.Name, Port: led.Port, Number: led.Number, Mode: gpio.ModeOutput})
	}
	s.Pins = append(s.Pins,
		PinSetup{Name: d.Button.Name, Port: d.Button.Port, Number: d.Button.Number, Mode: gpio.ModeInput},
		PinSetup{Name: "usart1_tx", Port: gpio.PortA, Number: 9, Mode: gpio.ModePeriphOut},
		PinSetup{Name: "usart1_rx", Port: gpio.PortA, Number: 10, Mode: gpio.ModePeriphIn},
		PinSetup{Name: "usart2_tx", Port: gpio.PortA, Number: 2, Mode: gpio.ModePeriphOut},
		PinSetup{Name: "usart2_rx", Port: gpio.PortA, Number: 3, Mode: gpio.ModePeriphIn},
	)
	return s
}
