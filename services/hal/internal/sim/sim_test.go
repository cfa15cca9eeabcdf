package sim

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gpiohal/services/hal/board"
	"gpiohal/services/hal/gpio"
)

func clocked(t *testing.T, id gpio.PortID) *Port {
	t.Helper()
	c := NewChip()
	c.RCC().Enable(board.PortGate(id))
	p, ok := c.Port(id)
	if !ok {
		t.Fatalf("no port %v", id)
	}
	return p
}

func TestUnclockedPortIgnoresWrites(t *testing.T) {
	c := NewChip()
	p, _ := c.Port(gpio.PortC)
	p.Drive(1, gpio.High)
	p.Configure(1, gpio.ModeOutput.Config())
	p.Set(1)
	if diff := cmp.Diff(Registers{}, p.Snapshot()); diff != "" {
		t.Fatalf("unclocked block changed (-want +got):\n%s", diff)
	}
	if p.Input(1) || p.Output(1) {
		t.Fatal("unclocked block reads non-zero")
	}

	c.RCC().Enable(board.GPIOC)
	if p.Output(1) {
		t.Fatal("write while gated was latched")
	}
	if !p.Input(1) {
		t.Fatal("input pad not visible once clocked")
	}
}

func TestBSRRSetWins(t *testing.T) {
	p := clocked(t, gpio.PortA)
	p.WriteBSRR(1<<3 | 1<<(3+16) | 1<<(4+16))
	p.Set(4)
	p.WriteBSRR(1 << (4 + 16))
	r := p.Snapshot()
	if r.ODR != 1<<3 {
		t.Fatalf("ODR = %#x, want bit 3 only", r.ODR)
	}
}

func TestIDRFollowsPadConfiguration(t *testing.T) {
	p := clocked(t, gpio.PortB)
	for n := uint8(0); n < 4; n++ {
		p.Drive(n, gpio.High)
	}
	p.Configure(0, gpio.ModeInput.Config())
	// Push-pull with the latch low.
	p.Configure(1, gpio.ModeOutput.Config())
	// Open-drain releases the line while the latch is high.
	p.Configure(2, gpio.Config{Direction: gpio.DirOutput, OutputType: gpio.OpenDrain})
	p.Configure(3, gpio.ModeAnalog.Config())
	p.Set(2)

	r := p.Snapshot()
	if got, want := r.IDR&0xF, uint32(0b0101); got != want {
		t.Fatalf("IDR = %#04b, want %#04b", got, want)
	}

	p.Clear(2) // open-drain sinks the line
	if p.Input(2) {
		t.Fatal("open-drain low latch should read low")
	}
}

func TestRCC(t *testing.T) {
	c := NewChip()
	r := c.RCC()
	r.Enable(board.USART2)
	r.Enable(board.GPIOE)
	if !r.Enabled(board.USART2) || !r.Enabled(board.GPIOE) || r.Enabled(board.GPIOA) {
		t.Fatal("gate state wrong")
	}
	if diff := cmp.Diff([]board.Peripheral{board.USART2, board.GPIOE}, r.EnableLog()); diff != "" {
		t.Fatalf("enable log (-want +got):\n%s", diff)
	}

	boom := errors.New("hse timeout")
	r.FailSystemInit(boom)
	if err := r.SystemInit(); err != boom {
		t.Fatalf("SystemInit err = %v", err)
	}
	r.FailSystemInit(nil)
	if err := r.SystemInit(); err != nil {
		t.Fatalf("SystemInit err = %v", err)
	}
	if r.SystemInits() != 2 {
		t.Fatalf("SystemInits = %d", r.SystemInits())
	}
	if _, ok := c.Port(gpio.PortID(6)); ok {
		t.Fatal("port G should not exist")
	}
}
