package heartbeat

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"gpiohal/bus"
	"gpiohal/services/hal"
	"gpiohal/services/hal/gpio"
	"gpiohal/types"
)

// latch is a clocked port with no electrical behaviour beyond the output
// data register.
type latch struct{ out uint16 }

func (l *latch) Set(n uint8)                      { l.out |= 1 << n }
func (l *latch) Clear(n uint8)                    { l.out &^= 1 << n }
func (l *latch) Input(n uint8) bool               { return false }
func (l *latch) Output(n uint8) bool              { return l.out&(1<<n) != 0 }
func (l *latch) Configure(n uint8, c gpio.Config) {}

func startHAL(t *testing.T, ctx context.Context) *bus.Bus {
	t.Helper()
	port := &latch{}
	banks := hal.NewBanks(func(id gpio.PortID) (gpio.Port, bool) {
		return port, id == gpio.PortE
	})
	setup := hal.Setup{Pins: []hal.PinSetup{
		{Name: "ld3", Port: gpio.PortE, Number: 9, Mode: gpio.ModeOutput},
		{Name: "user", Port: gpio.PortE, Number: 0, Mode: gpio.ModeInput},
	}}
	b := bus.NewBus(32)
	svc, err := hal.Build(b.NewConnection("hal"), banks, setup)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	svc.Start(ctx)
	return b
}

func TestHeartbeatTogglesPin(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := startHAL(t, ctx)

	mon := b.NewConnection("mon")
	states := mon.Subscribe(hal.StateTopic("ld3"))

	hb := New("ld3", 5*time.Millisecond)
	hb.Start(ctx, b.NewConnection("heartbeat"))

	var seen []bool
	deadline := time.After(2 * time.Second)
	for len(seen) < 3 {
		select {
		case m := <-states.Channel():
			seen = append(seen, m.Payload.(types.PinState).Level)
		case <-deadline:
			t.Fatalf("states seen: %v", seen)
		}
	}
	// Retained initial state, then two toggles.
	if diff := cmp.Diff([]bool{false, true, false}, seen); diff != "" {
		t.Fatalf("levels (-want +got):\n%s", diff)
	}
}

func TestHeartbeatCountsOnlyAcknowledgedBeats(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := startHAL(t, ctx)

	hb := New("user", 5*time.Millisecond)
	conn := b.NewConnection("heartbeat")
	if hb.beat(ctx, conn, "user") {
		t.Fatal("toggle of an input was acknowledged")
	}
	if hb.beat(ctx, conn, "nope") {
		t.Fatal("toggle of an unknown pin was acknowledged")
	}
	if !hb.beat(ctx, conn, "ld3") {
		t.Fatal("toggle of ld3 not acknowledged")
	}

	// A responder that does not answer with a PinReply, on a bus without HAL.
	bare := bus.NewBus(8)
	odd := bare.NewConnection("odd")
	sub := odd.Subscribe(hal.PinTopic("odd", hal.MethodToggle))
	go func() {
		for m := range sub.Channel() {
			odd.Reply(m, "ok", false)
		}
	}()
	t.Cleanup(func() { odd.Unsubscribe(sub) })
	if hb.beat(ctx, bare.NewConnection("heartbeat"), "odd") {
		t.Fatal("non-PinReply answer was acknowledged")
	}
}

func TestConfigMovesHeartbeat(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b := startHAL(t, ctx)

	cfg := b.NewConnection("config")
	cfg.Publish(cfg.NewMessage(topicConfigHeartbeat, types.HeartbeatConfig{Pin: "ld3", IntervalMS: 5}, true))

	// Starts on an input with a slow tick; the retained config fixes both.
	hb := New("user", time.Hour)
	hb.Start(ctx, b.NewConnection("heartbeat"))

	deadline := time.Now().Add(2 * time.Second)
	for hb.Beats() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("beats = %d", hb.Beats())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDecodeConfig(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want types.HeartbeatConfig
		ok   bool
	}{
		{"typed", types.HeartbeatConfig{Pin: "ld4", IntervalMS: 200}, types.HeartbeatConfig{Pin: "ld4", IntervalMS: 200}, true},
		{"pointer", &types.HeartbeatConfig{IntervalMS: 50}, types.HeartbeatConfig{IntervalMS: 50}, true},
		{"json ms", map[string]any{"pin": "ld5", "interval_ms": float64(100)}, types.HeartbeatConfig{Pin: "ld5", IntervalMS: 100}, true},
		{"json seconds", map[string]any{"interval": 1.5}, types.HeartbeatConfig{IntervalMS: 1500}, true},
		{"bad pin", map[string]any{"pin": 3}, types.HeartbeatConfig{}, false},
		{"nil", nil, types.HeartbeatConfig{}, false},
	}
	for _, c := range cases {
		got, ok := decodeConfig(c.in)
		if ok != c.ok {
			t.Fatalf("%s: ok = %v, want %v", c.name, ok, c.ok)
		}
		if ok {
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Fatalf("%s (-want +got):\n%s", c.name, diff)
			}
		}
	}
}
