package types

// ---- Common HAL state (retained) ----

type HALState struct {
	Level  string `json:"level"`  // e.g. "idle", "ready", "stopped"
	Status string `json:"status"` // freeform short code
	Board  string `json:"board,omitempty"`
}

// ---- GPIO payloads ----

// PinCommand is the request payload for hal/gpio/<name>/<method>.
// "mode" reads Mode, "write" reads Level; "toggle" and "read" ignore it.
type PinCommand struct {
	Mode  string `json:"mode,omitempty"`
	Level bool   `json:"level,omitempty"`
}

// PinState is retained on hal/gpio/<name>/state after every change.
type PinState struct {
	Name  string `json:"name"`
	Pin   string `json:"pin"` // e.g. "PE9"
	Mode  string `json:"mode"`
	Level bool   `json:"level"`
}

// PinReply answers a PinCommand.
type PinReply struct {
	OK    bool     `json:"ok"`
	Error string   `json:"error,omitempty"`
	State PinState `json:"state"`
}

// ---- Heartbeat ----

// HeartbeatConfig is read from the retained config/heartbeat topic.
// Zero fields keep the current value.
type HeartbeatConfig struct {
	Pin        string `json:"pin,omitempty"`
	IntervalMS int    `json:"interval_ms,omitempty"`
}
