package main

import (
	"context"
	"runtime"
	"time"

	"gpiohal/bus"
	"gpiohal/services/hal"
	"gpiohal/services/heartbeat"
	"gpiohal/types"
	"gpiohal/x/conv"
)

func printTopicWith(prefix string, t bus.Topic) {
	print(prefix)
	print(" ")
	var buf [20]byte
	for i, tok := range t {
		if i > 0 {
			print("/")
		}
		switch v := tok.(type) {
		case string:
			print(v)
		case int:
			print(string(conv.Itoa(buf[:], int64(v))))
		default:
			print("?")
		}
	}
	println()
}

func main() {
	time.Sleep(3 * time.Second)
	ctx := context.Background()

	println("[main] bootstrapping bus …")
	b := bus.NewBus(8)
	halConn := b.NewConnection("hal")
	uiConn := b.NewConnection("ui")

	println("[main] subscribing to hal/# for diagnostics …")
	mon := uiConn.Subscribe(bus.T("hal", "#"))
	go func() {
		for m := range mon.Channel() {
			printTopicWith("[monitor] <-", m.Topic)
		}
	}()

	ready := uiConn.Subscribe(hal.StateTopicHAL)
	println("[main] starting hal.Run …")
	go func() {
		if err := hal.Run(ctx, halConn, hal.DiscoveryF3Setup); err != nil {
			println("[main] hal stopped:", err.Error())
		}
	}()
	if st := waitHAL(ready); st.Level != "ready" {
		panic("main: hal " + st.Level + ": " + st.Status)
	}
	uiConn.Unsubscribe(ready)

	println("[main] heartbeat on ld3 …")
	heartbeat.New("ld3", 500*time.Millisecond).Start(ctx, b.NewConnection("heartbeat"))

	// Poll the user button; each press flips ld10.
	read := bus.T("hal", "gpio", "user", hal.MethodRead)
	toggle := hal.PinTopic("ld10", hal.MethodToggle)
	last := false
	for {
		reply, err := uiConn.RequestWait(ctx, uiConn.NewMessage(read, nil, false))
		if err != nil {
			println("[main] read error:", err.Error())
		} else if r, ok := reply.Payload.(types.PinReply); ok {
			if r.State.Level && !last {
				if _, err := uiConn.RequestWait(ctx, uiConn.NewMessage(toggle, nil, false)); err != nil {
					println("[main] toggle error:", err.Error())
				}
				printMem()
			}
			last = r.State.Level
		}
		time.Sleep(50 * time.Millisecond)
	}
}

// waitHAL returns the first HAL state that is "ready" or "stopped".
func waitHAL(sub *bus.Subscription) types.HALState {
	for m := range sub.Channel() {
		if st, ok := m.Payload.(types.HALState); ok && (st.Level == "ready" || st.Level == "stopped") {
			return st
		}
	}
	return types.HALState{Level: "stopped", Status: "closed"}
}

// printMem prints a compact snapshot of TinyGo runtime memory stats.
// Uses builtin println to avoid fmt overhead/allocations.
func printMem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	println(
		"[mem]",
		"alloc:", uint32(ms.Alloc),
		"heapInuse:", uint32(ms.HeapInuse),
		"heapSys:", uint32(ms.HeapSys),
		"mallocs:", uint32(ms.Mallocs),
		"frees:", uint32(ms.Frees),
	)
}
