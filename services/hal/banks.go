package hal

import (
	"sync"

	"gpiohal/errcode"
	"gpiohal/services/hal/gpio"
	"gpiohal/services/hal/internal/platform"
)

// PortSource resolves a register block by id.
type PortSource func(id gpio.PortID) (gpio.Port, bool)

// Banks hands out one gpio.Bank per register block.
type Banks struct {
	src PortSource

	mu    sync.Mutex
	banks map[gpio.PortID]*gpio.Bank
}

func NewBanks(src PortSource) *Banks {
	return &Banks{src: src, banks: make(map[gpio.PortID]*gpio.Bank)}
}

// Bank returns the bank for id, creating it on first use.
func (b *Banks) Bank(id gpio.PortID) (*gpio.Bank, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if bk, ok := b.banks[id]; ok {
		return bk, nil
	}
	p, ok := b.src(id)
	if !ok {
		return nil, errcode.UnknownPort
	}
	bk := gpio.NewBank(id, p)
	b.banks[id] = bk
	return bk, nil
}

// Claim reserves one pin from its bank.
func (b *Banks) Claim(id gpio.PortID, n uint8) (gpio.Location, error) {
	bk, err := b.Bank(id)
	if err != nil {
		return gpio.Location{}, err
	}
	return bk.Claim(n)
}

// Release hands pin n of block id back. Unknown blocks are ignored.
func (b *Banks) Release(id gpio.PortID, n uint8) {
	b.mu.Lock()
	bk := b.banks[id]
	b.mu.Unlock()
	if bk != nil {
		bk.Release(n)
	}
}

var (
	platformBanksOnce sync.Once
	platformBanks     *Banks
)

// PlatformBanks returns the banks of the chip this binary runs on.
func PlatformBanks() *Banks {
	platformBanksOnce.Do(func() { platformBanks = NewBanks(platform.Port) })
	return platformBanks
}
