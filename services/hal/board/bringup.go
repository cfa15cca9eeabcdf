package board

import (
	"sync"
	"sync/atomic"
)

// Board runs bring-up for one descriptor on one clock controller.
type Board struct {
	cc   ClockController
	desc Descriptor

	once sync.Once
	up   atomic.Bool
}

func New(cc ClockController, desc Descriptor) *Board {
	return &Board{cc: cc, desc: desc}
}

func (b *Board) Descriptor() Descriptor { return b.desc }

// Up reports whether Init has completed.
func (b *Board) Up() bool { return b.up.Load() }

// Init brings up the system clock and opens every gate the descriptor
// lists. It must run before the first pin is initialised. Later calls do
// nothing. A SystemInit failure panics.
func (b *Board) Init() {
	ran := false
	b.once.Do(func() {
		ran = true
		Bringup(b.cc, b.desc)
		b.up.Store(true)
	})
	if !ran {
		println("[board] already up:", b.desc.Name)
	}
}

// Bringup is the unguarded sequence behind Board.Init.
func Bringup(cc ClockController, d Descriptor) {
	if err := cc.SystemInit(); err != nil {
		println("[board] system init failed:", err.Error())
		panic("board: system init: " + err.Error())
	}
	for _, g := range d.Gates() {
		cc.Enable(g)
	}
	println("[board] up:", d.Name)
}
