package sim

import (
	"sync"

	"gpiohal/services/hal/board"
	"gpiohal/services/hal/gpio"
	"gpiohal/x/bitx"
)

// Registers is a snapshot of one GPIO block.
type Registers struct {
	MODER   uint32
	OTYPER  uint32
	OSPEEDR uint32
	PUPDR   uint32
	IDR     uint32
	ODR     uint32
}

// Port simulates one GPIO register block plus the external lines wired to
// its pins. It implements gpio.Port.
type Port struct {
	id   gpio.PortID
	rcc  *RCC
	gate board.Peripheral

	mu   sync.Mutex
	regs Registers
	ext  uint16 // level applied to each pad from outside the chip
}

var _ gpio.Port = (*Port)(nil)

func newPort(id gpio.PortID, rcc *RCC) *Port {
	return &Port{id: id, rcc: rcc, gate: board.PortGate(id)}
}

func (p *Port) ID() gpio.PortID { return p.id }

func (p *Port) clocked() bool { return p.rcc.Enabled(p.gate) }

// WriteBSRR applies a bit set/reset word: the low half sets ODR bits, the
// high half clears them, and set wins when both name the same bit.
func (p *Port) WriteBSRR(v uint32) {
	if !p.clocked() {
		return
	}
	p.mu.Lock()
	p.regs.ODR &^= v >> 16
	p.regs.ODR |= v & 0xFFFF
	p.mu.Unlock()
}

func (p *Port) Set(n uint8)   { p.WriteBSRR(1 << n) }
func (p *Port) Clear(n uint8) { p.WriteBSRR(1 << (uint(n) + 16)) }

func (p *Port) Input(n uint8) bool {
	return bitx.Bit(p.Snapshot().IDR, uint(n))
}

func (p *Port) Output(n uint8) bool {
	return bitx.Bit(p.Snapshot().ODR, uint(n))
}

func (p *Port) Configure(n uint8, c gpio.Config) {
	if !p.clocked() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	pos := 2 * uint(n)
	p.regs.MODER = bitx.WithField(p.regs.MODER, pos, 2, uint32(c.Direction))
	p.regs.OTYPER = bitx.WithBit(p.regs.OTYPER, uint(n), c.OutputType == gpio.OpenDrain)
	p.regs.OSPEEDR = bitx.WithField(p.regs.OSPEEDR, pos, 2, uint32(c.Speed))
	p.regs.PUPDR = bitx.WithField(p.regs.PUPDR, pos, 2, uint32(c.Pull))
}

// Drive sets the level an external circuit applies to pin n.
func (p *Port) Drive(n uint8, l gpio.Level) {
	p.mu.Lock()
	p.ext = bitx.WithBit(p.ext, uint(n), bool(l))
	p.mu.Unlock()
}

// Snapshot returns the register contents, with IDR derived from the pad
// state. An unclocked block reads as all zeros.
func (p *Port) Snapshot() Registers {
	if !p.clocked() {
		return Registers{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	r := p.regs
	r.IDR = p.idr()
	return r
}

// idr samples every pad: a push-pull output reads back its own latch, an
// open-drain output pulls low on a cleared latch, analog pads read zero and
// everything else follows the external line.
func (p *Port) idr() uint32 {
	var v uint32
	for n := uint(0); n < gpio.PinsPerPort; n++ {
		var bit bool
		ext := bitx.Bit(p.ext, n)
		switch gpio.Direction(bitx.Field(p.regs.MODER, 2*n, 2)) {
		case gpio.DirOutput:
			out := bitx.Bit(p.regs.ODR, n)
			if bitx.Bit(p.regs.OTYPER, n) {
				bit = out && ext
			} else {
				bit = out
			}
		case gpio.DirAnalog:
			bit = false
		default:
			bit = ext
		}
		v = bitx.WithBit(v, n, bit)
	}
	return v
}
