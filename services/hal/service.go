package hal

import (
	"context"

	"gpiohal/bus"
	"gpiohal/errcode"
	"gpiohal/services/hal/gpio"
	"gpiohal/types"
)

const (
	topicHAL   = "hal"
	topicGPIO  = "gpio"
	topicState = "state"

	MethodMode   = "mode"
	MethodWrite  = "write"
	MethodToggle = "toggle"
	MethodRead   = "read"
)

// PinTopic is the address of method on the pin called name.
func PinTopic(name, method string) bus.Topic {
	return bus.T(topicHAL, topicGPIO, name, method)
}

// StateTopic is where the retained PinState of name is published.
func StateTopic(name string) bus.Topic { return PinTopic(name, topicState) }

// Service serves named pins on the bus. All pin access happens on the
// goroutine started by Start, so the one-writer-per-pin rule holds as long
// as nobody else keeps a handle to an attached pin.
type Service struct {
	conn  *bus.Connection
	pins  map[string]*gpio.Pin
	names []string

	banks *Banks // set by Build; Close hands claims back to it
	done  chan struct{}
}

func NewService(conn *bus.Connection) *Service {
	return &Service{conn: conn, pins: make(map[string]*gpio.Pin)}
}

// Attach hands p to the service under name. Must be called before Start.
func (s *Service) Attach(name string, p *gpio.Pin) error {
	if _, dup := s.pins[name]; dup {
		return errcode.Wrap(errcode.PinInUse, "attach", name)
	}
	s.pins[name] = p
	s.names = append(s.names, name)
	return nil
}

// Names lists attached pins in attach order.
func (s *Service) Names() []string { return append([]string(nil), s.names...) }

// Start subscribes, publishes the initial state of every pin and serves
// requests until ctx is done.
func (s *Service) Start(ctx context.Context) {
	sub := s.conn.Subscribe(bus.T(topicHAL, topicGPIO, bus.SingleWild, bus.SingleWild))
	for _, name := range s.names {
		s.publishState(name)
	}
	s.done = make(chan struct{})
	go s.serve(ctx, sub)
}

// Close waits for the goroutine started by Start to return, then releases
// the bank claim of every attached pin. Pins keep their last
// configuration. After Start, Close blocks until Start's ctx is done.
func (s *Service) Close() {
	if s.done != nil {
		<-s.done
	}
	if s.banks == nil {
		return
	}
	for _, name := range s.names {
		loc := s.pins[name].Location()
		s.banks.Release(loc.ID, loc.Number)
	}
	s.banks = nil
}

func (s *Service) serve(ctx context.Context, sub *bus.Subscription) {
	defer close(s.done)
	defer s.conn.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			s.dispatch(msg)
		}
	}
}

func (s *Service) dispatch(msg *bus.Message) {
	if len(msg.Topic) != 4 {
		return
	}
	name, _ := msg.Topic[2].(string)
	method, _ := msg.Topic[3].(string)
	if method == topicState {
		return // our own publications
	}
	reply := s.Handle(name, method, msg.Payload)
	s.conn.Reply(msg, reply, false)
}

// Handle applies one request to the named pin and returns the reply.
// Write and toggle use the checked pin operations, so a pin that is not an
// output answers wrong_mode instead of silently ignoring the request.
func (s *Service) Handle(name, method string, payload any) types.PinReply {
	p, ok := s.pins[name]
	if !ok {
		return types.PinReply{Error: string(errcode.UnknownPin)}
	}
	cmd, ok := decodeCommand(payload)
	if !ok {
		return s.fail(name, errcode.InvalidPayload)
	}

	var err error
	changed := false
	switch method {
	case MethodRead:
	case MethodMode:
		var m gpio.Mode
		if m, err = gpio.ParseMode(cmd.Mode); err == nil {
			p.SetMode(m)
			changed = true
		}
	case MethodWrite:
		err = p.TryWrite(gpio.Level(cmd.Level))
		changed = err == nil
	case MethodToggle:
		err = p.TryToggle()
		changed = err == nil
	default:
		err = errcode.InvalidTopic
	}
	if err != nil {
		return s.fail(name, err)
	}
	if changed {
		s.publishState(name)
	}
	return types.PinReply{OK: true, State: s.state(name)}
}

func (s *Service) fail(name string, err error) types.PinReply {
	return types.PinReply{Error: string(errcode.Of(err)), State: s.state(name)}
}

func (s *Service) state(name string) types.PinState {
	p := s.pins[name]
	return types.PinState{
		Name:  name,
		Pin:   p.Location().String(),
		Mode:  p.Mode().String(),
		Level: bool(p.Read()),
	}
}

func (s *Service) publishState(name string) {
	s.conn.Publish(s.conn.NewMessage(StateTopic(name), s.state(name), true))
}

func decodeCommand(payload any) (types.PinCommand, bool) {
	switch v := payload.(type) {
	case nil:
		return types.PinCommand{}, true
	case types.PinCommand:
		return v, true
	case *types.PinCommand:
		if v == nil {
			return types.PinCommand{}, true
		}
		return *v, true
	case map[string]any:
		var c types.PinCommand
		if m, ok := v["mode"]; ok {
			if c.Mode, ok = m.(string); !ok {
				return c, false
			}
		}
		if l, ok := v["level"]; ok {
			if c.Level, ok = l.(bool); !ok {
				return c, false
			}
		}
		return c, true
	}
	return types.PinCommand{}, false
}
