//go:build stm32f303

package stm32f3

import (
	"errors"
	"runtime/volatile"

	"device/stm32"

	"gpiohal/services/hal/board"
	"gpiohal/x/bitx"
)

/*
   clock settings
   +-------------+--------+
   | HSE         | 8mhz   |
   | SYSCLK      | 72mhz  |
   | HCLK        | 72mhz  |
   | APB2(PCLK2) | 72mhz  |
   | APB1(PCLK1) | 36mhz  |
   +-------------+--------+
*/

// RCC_CR
const (
	crHSEON  = 16
	crHSERDY = 17
	crPLLON  = 24
	crPLLRDY = 25
)

// RCC_CFGR
const (
	cfgrSWPos     = 0
	cfgrSWSPos    = 2
	cfgrPPRE1Pos  = 8
	cfgrPLLSRCPos = 16
	cfgrPLLMULPos = 18

	swPLL      = 0b10
	ppreDiv2   = 0b100
	pllMulX9   = 0b0111
	pllSrcHSE  = 1
	flashWait2 = 2
)

const startupTimeout = 0x5000

var (
	errHSE = errors.New("hse not ready")
	errPLL = errors.New("pll not ready")
	errSW  = errors.New("sysclk switch timeout")
)

// Clocks is the STM32F303 reset and clock control block.
type Clocks struct{}

var _ board.ClockController = Clocks{}

// SystemInit switches SYSCLK from HSI to the PLL fed by the 8 MHz HSE.
func (Clocks) SystemInit() error {
	rcc := stm32.RCC

	rcc.CR.SetBits(1 << crHSEON)
	if !waitBit(&rcc.CR, crHSERDY) {
		return errHSE
	}

	stm32.FLASH.ACR.Set(bitx.WithField(stm32.FLASH.ACR.Get(), 0, 3, flashWait2))

	cfgr := rcc.CFGR.Get()
	cfgr = bitx.WithField(cfgr, cfgrPPRE1Pos, 3, ppreDiv2)
	cfgr = bitx.WithField(cfgr, cfgrPLLSRCPos, 1, pllSrcHSE)
	cfgr = bitx.WithField(cfgr, cfgrPLLMULPos, 4, pllMulX9)
	rcc.CFGR.Set(cfgr)

	rcc.CR.SetBits(1 << crPLLON)
	if !waitBit(&rcc.CR, crPLLRDY) {
		return errPLL
	}

	rcc.CFGR.Set(bitx.WithField(rcc.CFGR.Get(), cfgrSWPos, 2, swPLL))
	for i := 0; i < startupTimeout; i++ {
		if bitx.Field(rcc.CFGR.Get(), cfgrSWSPos, 2) == swPLL {
			return nil
		}
	}
	return errSW
}

func waitBit(r *volatile.Register32, bit uint) bool {
	for i := 0; i < startupTimeout; i++ {
		if bitx.Bit(r.Get(), bit) {
			return true
		}
	}
	return false
}

func (Clocks) Enable(p board.Peripheral) {
	if r, bit, ok := gate(p); ok {
		r.SetBits(1 << bit)
	}
}

func (Clocks) Enabled(p board.Peripheral) bool {
	r, bit, ok := gate(p)
	return ok && bitx.Bit(r.Get(), bit)
}

// gate maps a peripheral to its enable register and bit.
func gate(p board.Peripheral) (*volatile.Register32, uint, bool) {
	rcc := stm32.RCC
	switch p {
	case board.GPIOA, board.GPIOB, board.GPIOC, board.GPIOD, board.GPIOE, board.GPIOF:
		// IOPAEN is bit 17; the remaining ports follow in order.
		return &rcc.AHBENR, 17 + uint(p-board.GPIOA), true
	case board.DMA1:
		return &rcc.AHBENR, 0, true
	case board.USART1:
		return &rcc.APB2ENR, 14, true
	case board.SYSCFG:
		return &rcc.APB2ENR, 0, true
	case board.USART2:
		return &rcc.APB1ENR, 17, true
	}
	return nil, 0, false
}
