package main

import (
	"time"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"gpiohal/services/hal"
	"gpiohal/services/hal/board"
	"gpiohal/services/hal/gpio"
	"gpiohal/services/hal/periphio"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	d := board.DiscoveryF3
	hal.Bringup(d)
	banks := hal.PlatformBanks()

	// PE8..PE15 run round the compass ring in pin order.
	leds := make([]gpio.Output, 0, len(d.LEDs))
	for _, ref := range d.LEDs {
		loc, err := banks.Claim(ref.Port, ref.Number)
		if err != nil {
			println("[main] claim", ref.Name, "failed:", err.Error())
			continue
		}
		leds = append(leds, gpio.NewOutput(loc))
	}
	if len(leds) == 0 {
		panic("main: no LEDs")
	}

	loc, err := banks.Claim(d.Button.Port, d.Button.Number)
	if err != nil {
		panic("main: button: " + err.Error())
	}
	if _, err := periphio.Register(gpio.NewPin(loc, gpio.ModeInput)); err != nil {
		panic("main: button: " + err.Error())
	}
	// From here on the button is only reached through periph.
	button := gpioreg.ByName(loc.String())
	if err := button.In(pgpio.Float, pgpio.NoEdge); err != nil {
		panic("main: button: " + err.Error())
	}

	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	// Chase one LED round the ring; each press reverses it.
	i, step, last := 0, 1, pgpio.Low
	leds[i].High()
	for range tick.C {
		if b := button.Read(); b != last {
			last = b
			if b == pgpio.High {
				step = -step
				println("[main] reverse")
			}
		}
		leds[i].Low()
		i = (i + step + len(leds)) % len(leds)
		leds[i].High()
	}
}
