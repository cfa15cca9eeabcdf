package gpio

import (
	"sync"

	"gpiohal/errcode"
)

// Bank is the owning handle for one register block. Pins obtained through
// Claim hold a non-owning reference to the block's Port; the Bank makes
// sure each physical pin is handed out once.
type Bank struct {
	id   PortID
	port Port

	mu      sync.Mutex
	claimed uint16
}

// NewBank wraps port, which must be the register block named id.
func NewBank(id PortID, port Port) *Bank {
	return &Bank{id: id, port: port}
}

func (b *Bank) ID() PortID { return b.id }
func (b *Bank) Port() Port { return b.port }

// Claim reserves pin n and returns its Location.
func (b *Bank) Claim(n uint8) (Location, error) {
	if n >= PinsPerPort {
		return Location{}, errcode.UnknownPin
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.claimed&(1<<n) != 0 {
		return Location{}, errcode.PinInUse
	}
	b.claimed |= 1 << n
	return Location{Port: b.port, ID: b.id, Number: n}, nil
}

// Release returns pin n to the bank. The pin keeps its configuration.
func (b *Bank) Release(n uint8) {
	if n >= PinsPerPort {
		return
	}
	b.mu.Lock()
	b.claimed &^= 1 << n
	b.mu.Unlock()
}

// Claimed reports whether pin n is currently reserved.
func (b *Bank) Claimed(n uint8) bool {
	if n >= PinsPerPort {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.claimed&(1<<n) != 0
}
