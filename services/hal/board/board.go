// Package board performs one-time peripheral enablement: system clock
// bring-up followed by the clock gate of every register block a board
// uses.
//
// Bring-up has no error channel. It runs before anything that could report
// a failure, so a clock configuration that cannot be reached halts the
// firmware with a panic.
package board

import "gpiohal/services/hal/gpio"

// Peripheral names one clock gate.
type Peripheral uint8

const (
	GPIOA Peripheral = iota
	GPIOB
	GPIOC
	GPIOD
	GPIOE
	GPIOF
	DMA1
	USART1
	USART2
	SYSCFG

	peripheralCount
)

var peripheralNames = [peripheralCount]string{
	GPIOA:  "GPIOA",
	GPIOB:  "GPIOB",
	GPIOC:  "GPIOC",
	GPIOD:  "GPIOD",
	GPIOE:  "GPIOE",
	GPIOF:  "GPIOF",
	DMA1:   "DMA1",
	USART1: "USART1",
	USART2: "USART2",
	SYSCFG: "SYSCFG",
}

func (p Peripheral) String() string {
	if p >= peripheralCount {
		return "unknown"
	}
	return peripheralNames[p]
}

// PortGate returns the clock gate for the register block id.
func PortGate(id gpio.PortID) Peripheral { return GPIOA + Peripheral(id) }

// ClockController is the reset-and-clock-control capability of a chip.
type ClockController interface {
	// SystemInit brings up the system clock tree. An error is fatal.
	SystemInit() error
	// Enable opens the clock gate for p. Enabling twice is harmless.
	Enable(p Peripheral)
	// Enabled reports whether the gate for p is open.
	Enabled(p Peripheral) bool
}

// PinRef names a pin on a board without binding it.
type PinRef struct {
	Name   string
	Port   gpio.PortID
	Number uint8
}

// Descriptor describes what a board needs clocked and which pins it wires
// to fixed functions. It carries no operating parameters.
type Descriptor struct {
	Name        string
	Ports       []gpio.PortID
	Peripherals []Peripheral

	LEDs   []PinRef
	Button PinRef
}

// Gates lists every clock gate d requires, ports first.
func (d Descriptor) Gates() []Peripheral {
	out := make([]Peripheral, 0, len(d.Ports)+len(d.Peripherals))
	for _, id := range d.Ports {
		out = append(out, PortGate(id))
	}
	return append(out, d.Peripherals...)
}

// DiscoveryF3 is the STM32F3 Discovery: serial ports 1 and 2 with DMA1,
// GPIO blocks A, B and E. SYSCFG (EXTI routing) stays gated.
var DiscoveryF3 = Descriptor{
	Name:        "discoveryf3",
	Ports:       []gpio.PortID{gpio.PortA, gpio.PortB, gpio.PortE},
	Peripherals: []Peripheral{USART1, USART2, DMA1},
	LEDs: []PinRef{
		{Name: "ld4", Port: gpio.PortE, Number: 8},
		{Name: "ld3", Port: gpio.PortE, Number: 9},
		{Name: "ld5", Port: gpio.PortE, Number: 10},
		{Name: "ld7", Port: gpio.PortE, Number: 11},
		{Name: "ld9", Port: gpio.PortE, Number: 12},
		{Name: "ld10", Port: gpio.PortE, Number: 13},
		{Name: "ld8", Port: gpio.PortE, Number: 14},
		{Name: "ld6", Port: gpio.PortE, Number: 15},
	},
	Button: PinRef{Name: "user", Port: gpio.PortA, Number: 0},
}
