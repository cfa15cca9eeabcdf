package gpio

import "gpiohal/errcode"

// Mode is the electrical personality of a pin.
type Mode uint8

const (
	ModeInput       Mode = iota // digital input
	ModeOutput                  // general-purpose push-pull output
	ModePeriphOut               // alternate function, peripheral drives the pin
	ModePeriphIn                // alternate function, peripheral samples the pin
	ModePeriphInOut             // alternate function, open-drain bidirectional
	ModeAnalog                  // analog, digital path disabled

	modeCount
)

var modeNames = [modeCount]string{
	ModeInput:       "input",
	ModeOutput:      "output",
	ModePeriphOut:   "periph_out",
	ModePeriphIn:    "periph_in",
	ModePeriphInOut: "periph_in_out",
	ModeAnalog:      "analog",
}

func (m Mode) String() string {
	if !m.Valid() {
		return "invalid"
	}
	return modeNames[m]
}

// Valid reports whether m is one of the defined modes. Values built from
// constants are always valid; this guards values decoded from outside.
func (m Mode) Valid() bool { return m < modeCount }

// ParseMode maps a mode name (as returned by String) to its Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return Mode(m), nil
		}
	}
	return 0, errcode.InvalidMode
}

// Modes returns every defined mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, modeCount)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// Direction values follow the STM32 MODER encoding.
type Direction uint8

const (
	DirInput Direction = iota
	DirOutput
	DirAltFunc
	DirAnalog
)

// OutputType values follow the OTYPER encoding.
type OutputType uint8

const (
	PushPull OutputType = iota
	OpenDrain
)

// Pull values follow the PUPDR encoding.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Speed values follow the OSPEEDR encoding (x0 low, 01 medium, 11 high).
type Speed uint8

const (
	SpeedLow    Speed = 0
	SpeedMedium Speed = 1
	SpeedHigh   Speed = 3
)

// Config is the electrical configuration applied to one pin slice.
type Config struct {
	Direction  Direction
	OutputType OutputType
	Pull       Pull
	Speed      Speed
}

// modeTable holds one row per Mode. Speed is pinned to the fastest setting
// for every digital mode; analog leaves the slew configuration at reset.
var modeTable = [...]Config{
	ModeInput:       {Direction: DirInput, OutputType: OpenDrain, Pull: PullNone, Speed: SpeedHigh},
	ModeOutput:      {Direction: DirOutput, OutputType: PushPull, Pull: PullNone, Speed: SpeedHigh},
	ModePeriphOut:   {Direction: DirAltFunc, OutputType: PushPull, Pull: PullNone, Speed: SpeedHigh},
	ModePeriphIn:    {Direction: DirAltFunc, OutputType: PushPull, Pull: PullNone, Speed: SpeedHigh},
	ModePeriphInOut: {Direction: DirAltFunc, OutputType: OpenDrain, Pull: PullNone, Speed: SpeedHigh},
	ModeAnalog:      {Direction: DirAnalog, OutputType: PushPull, Pull: PullNone, Speed: SpeedLow},
}

// Fails to compile unless modeTable has exactly one row per Mode.
var _ = [1]struct{}{}[len(modeTable)-int(modeCount)]

// Config returns the electrical configuration for m. m must be valid.
func (m Mode) Config() Config { return modeTable[m] }
