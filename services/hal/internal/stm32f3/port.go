//go:build stm32f303

// Package stm32f3 drives the real GPIO and RCC registers of an STM32F303.
package stm32f3

import (
	"device/stm32"
	"runtime/interrupt"

	"gpiohal/services/hal/gpio"
	"gpiohal/x/bitx"
)

// Port is one memory-mapped GPIO block.
type Port struct {
	r *stm32.GPIO_Type
}

var _ gpio.Port = (*Port)(nil)

var ports = [...]Port{
	gpio.PortA: {stm32.GPIOA},
	gpio.PortB: {stm32.GPIOB},
	gpio.PortC: {stm32.GPIOC},
	gpio.PortD: {stm32.GPIOD},
	gpio.PortE: {stm32.GPIOE},
	gpio.PortF: {stm32.GPIOF},
}

// PortFor returns the block id.
func PortFor(id gpio.PortID) (*Port, bool) {
	if int(id) >= len(ports) {
		return nil, false
	}
	return &ports[id], true
}

// BSRR writes are atomic in hardware; no masking needed.
func (p *Port) Set(n uint8)   { p.r.BSRR.Set(1 << n) }
func (p *Port) Clear(n uint8) { p.r.BSRR.Set(1 << (uint32(n) + 16)) }

func (p *Port) Input(n uint8) bool  { return bitx.Bit(p.r.IDR.Get(), uint(n)) }
func (p *Port) Output(n uint8) bool { return bitx.Bit(p.r.ODR.Get(), uint(n)) }

// Configure rewrites the pin's slices of MODER, OTYPER, OSPEEDR and PUPDR.
// Those registers are shared by the whole block, so interrupts are masked
// across the read-modify-write.
func (p *Port) Configure(n uint8, c gpio.Config) {
	pos := 2 * uint(n)
	state := interrupt.Disable()
	p.r.MODER.Set(bitx.WithField(p.r.MODER.Get(), pos, 2, uint32(c.Direction)))
	p.r.OTYPER.Set(bitx.WithBit(p.r.OTYPER.Get(), uint(n), c.OutputType == gpio.OpenDrain))
	p.r.OSPEEDR.Set(bitx.WithField(p.r.OSPEEDR.Get(), pos, 2, uint32(c.Speed)))
	p.r.PUPDR.Set(bitx.WithField(p.r.PUPDR.Get(), pos, 2, uint32(c.Pull)))
	interrupt.Restore(state)
}
