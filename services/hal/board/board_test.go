package board_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gpiohal/services/hal/board"
	"gpiohal/services/hal/gpio"
	"gpiohal/services/hal/internal/sim"
)

func TestDiscoveryF3Gates(t *testing.T) {
	want := []board.Peripheral{board.GPIOA, board.GPIOB, board.GPIOE, board.USART1, board.USART2, board.DMA1}
	if diff := cmp.Diff(want, board.DiscoveryF3.Gates()); diff != "" {
		t.Fatalf("gates (-want +got):\n%s", diff)
	}
	if len(board.DiscoveryF3.LEDs) != 8 {
		t.Fatalf("LEDs = %d", len(board.DiscoveryF3.LEDs))
	}
}

func TestInitEnablesDescriptorGatesOnce(t *testing.T) {
	chip := sim.NewChip()
	rcc := chip.RCC()
	b := board.New(rcc, board.DiscoveryF3)
	if b.Up() {
		t.Fatal("up before Init")
	}

	b.Init()
	b.Init()

	if !b.Up() {
		t.Fatal("not up after Init")
	}
	if rcc.SystemInits() != 1 {
		t.Fatalf("SystemInit ran %d times", rcc.SystemInits())
	}
	if diff := cmp.Diff(board.DiscoveryF3.Gates(), rcc.EnableLog()); diff != "" {
		t.Fatalf("enable log (-want +got):\n%s", diff)
	}
	if rcc.Enabled(board.SYSCFG) || rcc.Enabled(board.GPIOC) {
		t.Fatal("gate outside the descriptor opened")
	}
}

func TestUpDuringConcurrentInit(t *testing.T) {
	rcc := sim.NewChip().RCC()
	b := board.New(rcc, board.DiscoveryF3)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); b.Init() }()
		go func() { defer wg.Done(); _ = b.Up() }()
	}
	wg.Wait()

	if !b.Up() || rcc.SystemInits() != 1 {
		t.Fatalf("up=%v systemInits=%d", b.Up(), rcc.SystemInits())
	}
}

func TestPinsWorkOnlyAfterBringup(t *testing.T) {
	chip := sim.NewChip()
	port, _ := chip.Port(gpio.PortE)
	loc := gpio.Location{Port: port, ID: gpio.PortE, Number: 9}

	early := gpio.NewPin(loc, gpio.ModeOutput)
	early.Write(gpio.High)
	if early.Read() != gpio.Low {
		t.Fatal("unclocked block accepted a write")
	}

	board.New(chip.RCC(), board.DiscoveryF3).Init()
	p := gpio.NewPin(loc, gpio.ModeOutput)
	p.Write(gpio.High)
	if p.Read() != gpio.High {
		t.Fatal("write after bring-up not observed")
	}
}

func TestSystemInitFailurePanics(t *testing.T) {
	chip := sim.NewChip()
	chip.RCC().FailSystemInit(errors.New("pll not ready"))

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic")
		}
		if chip.RCC().Enabled(board.GPIOA) {
			t.Fatal("gates opened after failed SystemInit")
		}
	}()
	board.Bringup(chip.RCC(), board.DiscoveryF3)
}

func TestPeripheralNames(t *testing.T) {
	if board.PortGate(gpio.PortE) != board.GPIOE {
		t.Fatal("PortGate(E) != GPIOE")
	}
	if board.USART2.String() != "USART2" || board.Peripheral(200).String() != "unknown" {
		t.Fatal("peripheral names")
	}
}
