// Package hal brings the board up and serves its GPIO pins on the bus.
package hal

import (
	"context"
	"sync"

	"gpiohal/bus"
	"gpiohal/errcode"
	"gpiohal/services/hal/board"
	"gpiohal/services/hal/gpio"
	"gpiohal/services/hal/internal/platform"
	"gpiohal/types"
)

// -----------------------------------------------------------------------------
// Entry point
// -----------------------------------------------------------------------------

// Run brings up setup.Board on this platform, initialises every pin of the
// setup and serves them until ctx is done. Bring-up failure panics.
func Run(ctx context.Context, conn *bus.Connection, setup Setup) error {
	Bringup(setup.Board)

	svc, err := Build(conn, PlatformBanks(), setup)
	if err != nil {
		println("[hal] setup failed:", err.Error())
		publishHALState(conn, "stopped", string(errcode.Of(err)), setup.Board.Name)
		return err
	}
	svc.Start(ctx)
	publishHALState(conn, "ready", "ok", setup.Board.Name)
	println("[hal] ready:", setup.Board.Name)

	<-ctx.Done()
	svc.Close()
	publishHALState(conn, "stopped", "ok", setup.Board.Name)
	return nil
}

var (
	platformBoardOnce sync.Once
	platformBoard     *board.Board
)

// Bringup runs peripheral enablement for d on this platform's clock
// controller. It must precede the first pin Init. The platform has a single
// board: the first descriptor wins and later calls are logged no-ops.
func Bringup(d board.Descriptor) *board.Board {
	platformBoardOnce.Do(func() { platformBoard = board.New(platform.Clocks(), d) })
	if name := platformBoard.Descriptor().Name; name != d.Name {
		println("[hal] board already chosen:", name)
	}
	platformBoard.Init()
	return platformBoard
}

// Build claims and initialises every pin of setup and attaches it to a new
// service. Pins are driven low as they are initialised. On failure every
// claim made so far is released.
func Build(conn *bus.Connection, banks *Banks, setup Setup) (*Service, error) {
	svc := NewService(conn)
	svc.banks = banks
	for _, ps := range setup.Pins {
		if !ps.Mode.Valid() {
			svc.Close()
			return nil, errcode.Wrap(errcode.InvalidMode, "build", ps.Name)
		}
		loc, err := banks.Claim(ps.Port, ps.Number)
		if err != nil {
			svc.Close()
			return nil, &errcode.E{C: errcode.Of(err), Op: "build", Msg: ps.Name, Err: err}
		}
		if err := svc.Attach(ps.Name, gpio.NewPin(loc, ps.Mode)); err != nil {
			banks.Release(ps.Port, ps.Number)
			svc.Close()
			return nil, err
		}
	}
	return svc, nil
}

// StateTopicHAL carries the retained types.HALState.
var StateTopicHAL = bus.T(topicHAL, topicState)

func publishHALState(conn *bus.Connection, level, status, boardName string) {
	conn.Publish(conn.NewMessage(StateTopicHAL, types.HALState{Level: level, Status: status, Board: boardName}, true))
}
