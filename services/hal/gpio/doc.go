// Package gpio is the pin abstraction for STM32F3-class GPIO register blocks.
//
// A Pin binds a Location (register block + bit number) to one Mode from a
// closed set. The mode selects the electrical configuration of the pin and
// the behaviour of Read, Write and Toggle:
//
//   - Write and Toggle only take effect in ModeOutput; in every other mode
//     they are silently ignored. TryWrite and TryToggle report the mismatch
//     as errcode.WrongMode instead.
//   - Read samples the input latch in ModeInput and the output latch in
//     every other mode.
//   - Init and SetMode always leave the output latch cleared (LOW).
//
// Pins own no hardware. The register block behind a Location is shared,
// process-wide state reached through the Port capability. Callers must
// enable the block's clock (see package board) before the first Init;
// touching an unclocked block is undefined and is not reported.
//
// Nothing here is safe for concurrent use of the same physical pin. Keep
// exactly one handle per pin (Bank.Claim enforces this) and drive it from
// one goroutine; interrupt handlers that share a pin need their own
// synchronisation.
//
// Direction-typed handles (Output, Input, Periph, Analog) wrap a Pin so that
// Write and Toggle only exist where they can take effect.
package gpio
