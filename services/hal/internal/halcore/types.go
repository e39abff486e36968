// services/hal/internal/halcore/types.go
package halcore

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// ParsePull maps the configuration spelling ("", "none", "up", "down").
func ParsePull(s string) (Pull, bool) {
	switch s {
	case "", "none":
		return PullNone, true
	case "up":
		return PullUp, true
	case "down":
		return PullDown, true
	}
	return PullNone, false
}

type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// IRQPin extends GPIOPin with interrupts. Handlers run in interrupt
// context on hardware: no blocking, no allocation.
type IRQPin interface {
	GPIOPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// PinFactory supplies GPIO pins by the configured number scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---- PWM ----

// PWM is one PWM output channel with a logical resolution of 0..top.
type PWM interface {
	Configure(freqHz uint64, top uint16) error
	Set(level uint16)
}

// PWMFactory hands out the PWM channel wired to a GPIO number.
type PWMFactory interface {
	PWMByPin(n int) (PWM, bool)
}

// Util
func EdgeToString(e Edge) string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}
