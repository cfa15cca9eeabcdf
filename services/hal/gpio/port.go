package gpio

// Port is the register-level capability of one GPIO register block.
//
// Every method addresses a single pin slice n (0..15) of the block and is
// treated as atomic with no failure return. Configure may read-modify-write
// registers shared by the whole block; implementations serialise that
// themselves.
type Port interface {
	Set(n uint8)                 // drive the output latch high
	Clear(n uint8)               // drive the output latch low
	Input(n uint8) bool          // sample the input data register
	Output(n uint8) bool         // read back the output data register
	Configure(n uint8, c Config) // apply direction, output type, pull and speed
}

// PinsPerPort is the number of pin slices in one register block.
const PinsPerPort = 16

// PortID names a register block (GPIOA..GPIOF).
type PortID uint8

const (
	PortA PortID = iota
	PortB
	PortC
	PortD
	PortE
	PortF

	portCount
)

func (id PortID) String() string {
	if id >= portCount {
		return "?"
	}
	return string(rune('A' + id))
}

// Valid reports whether id names an existing register block.
func (id PortID) Valid() bool { return id < portCount }

// Location identifies one physical pin.
type Location struct {
	Port   Port
	ID     PortID
	Number uint8
}

// Valid reports whether l addresses a pin slice of a present block.
func (l Location) Valid() bool {
	return l.Port != nil && l.ID.Valid() && l.Number < PinsPerPort
}

// String renders the conventional pin name, e.g. "PA5".
func (l Location) String() string {
	b := []byte{'P', 'A' + byte(l.ID)}
	if l.Number >= 10 {
		b = append(b, '1', '0'+l.Number-10)
	} else {
		b = append(b, '0'+l.Number)
	}
	return string(b)
}
