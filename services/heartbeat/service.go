// Package heartbeat blinks a HAL output pin as a liveness indicator.
package heartbeat

import (
	"context"
	"sync/atomic"
	"time"

	"gpiohal/bus"
	"gpiohal/services/hal"
	"gpiohal/types"
	"gpiohal/x/conv"
)

var topicConfigHeartbeat = bus.T("config", "heartbeat")

const (
	DefaultInterval = time.Second
	requestTimeout  = 250 * time.Millisecond
)

type Service struct {
	pin      string
	interval time.Duration
	beats    atomic.Uint32
}

// New returns a heartbeat on the HAL pin called pin. A non-positive
// interval means DefaultInterval.
func New(pin string, interval time.Duration) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{pin: pin, interval: interval}
}

// Beats counts acknowledged toggles.
func (s *Service) Beats() uint32 { return s.beats.Load() }

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)

	pin, interval := s.pin, s.interval
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case <-tick.C:
			if s.beat(ctx, conn, pin) {
				s.beats.Add(1)
			}
		case msg := <-cfgSub.Channel():
			cfg, ok := decodeConfig(msg.Payload)
			if !ok {
				println("[heartbeat] ignoring config: invalid payload")
				continue
			}
			if cfg.Pin != "" {
				pin = cfg.Pin
			}
			if cfg.IntervalMS > 0 {
				interval = time.Duration(cfg.IntervalMS) * time.Millisecond
				tick.Reset(interval)
			}
			var buf [20]byte
			println("[heartbeat] " + pin + " every " + string(conv.Itoa(buf[:], interval.Milliseconds())) + "ms")
		}
	}
}

// beat toggles pin through the HAL and reports whether it was acknowledged.
func (s *Service) beat(ctx context.Context, conn *bus.Connection, pin string) bool {
	rctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	msg, err := conn.RequestWait(rctx, conn.NewMessage(hal.PinTopic(pin, hal.MethodToggle), nil, false))
	if err != nil {
		println("[heartbeat] toggle", pin, "failed:", err.Error())
		return false
	}
	r, ok := msg.Payload.(types.PinReply)
	if !ok {
		println("[heartbeat] toggle", pin, "refused: unexpected reply")
		return false
	}
	if !r.OK {
		println("[heartbeat] toggle", pin, "refused:", r.Error)
		return false
	}
	return true
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}

// decodeConfig accepts a types.HeartbeatConfig or a decoded JSON object
// with "pin" and either "interval_ms" or "interval" (seconds).
func decodeConfig(payload any) (types.HeartbeatConfig, bool) {
	switch v := payload.(type) {
	case types.HeartbeatConfig:
		return v, true
	case *types.HeartbeatConfig:
		if v == nil {
			return types.HeartbeatConfig{}, false
		}
		return *v, true
	case map[string]any:
		var c types.HeartbeatConfig
		if p, ok := v["pin"]; ok {
			if c.Pin, ok = p.(string); !ok {
				return c, false
			}
		}
		if ms, ok := number(v["interval_ms"]); ok {
			c.IntervalMS = int(ms)
		} else if sec, ok := number(v["interval"]); ok {
			c.IntervalMS = int(sec * 1000)
		}
		return c, true
	}
	return types.HeartbeatConfig{}, false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
