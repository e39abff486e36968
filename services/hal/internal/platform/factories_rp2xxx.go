// services/hal/internal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"machine"
	"sync"

	"menucode-go/errcode"
	halcore "menucode-go/services/hal/internal/halcore"
)

// -----------------------------------------------------------------------------
// Defaults used on Raspberry Pi Pico / Pico 2 (RP2 family)
// -----------------------------------------------------------------------------

// DefaultPinFactory maps logical numbers directly to machine.Pin(n), which
// matches Pico GP numbering.
func DefaultPinFactory() halcore.PinFactory { return rp2PinFactory{} }

// DefaultPWMFactory hands out PWM channels by GPIO number.
func DefaultPWMFactory() halcore.PWMFactory { return rp2PWMFactory{} }

// ---- GPIO implementation (includes IRQ support) ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	// Constrain to RP2 user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Toggle()        { r.p.Set(!r.p.Get()) }
func (r *rp2Pin) Number() int    { return r.n }

// The RP2 port provides SetInterrupt with PinChange flags. The callback runs
// in interrupt context.
func (r *rp2Pin) SetIRQ(edge halcore.Edge, handler func()) error {
	return r.p.SetInterrupt(toPinChange(edge), func(machine.Pin) { handler() })
}

func (r *rp2Pin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

func toPinChange(e halcore.Edge) machine.PinChange {
	switch e {
	case halcore.EdgeRising:
		return machine.PinRising
	case halcore.EdgeFalling:
		return machine.PinFalling
	case halcore.EdgeBoth:
		return machine.PinToggle
	default:
		var zero machine.PinChange
		return zero
	}
}

// ---- PWM implementation ----

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Top() uint32
	Set(channel uint8, value uint32)
}

func pwmGroupBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// Both channels of a slice share its period; the first Configure wins and a
// later one asking for another frequency is refused.
var sliceFreq struct {
	mu sync.Mutex
	hz [8]uint64
}

type rp2PWMFactory struct{}

func (rp2PWMFactory) PWMByPin(n int) (halcore.PWM, bool) {
	if n < 0 || n > 28 {
		return nil, false
	}
	slice := uint8(n>>1) & 7
	return &rp2PWM{pin: n, slice: slice, ch: uint8(n & 1), ctrl: pwmGroupBySlice(slice)}, true
}

type rp2PWM struct {
	mu     sync.Mutex
	pin    int
	slice  uint8
	ch     uint8
	ctrl   pwmCtrl
	reqTop uint16
	hwTop  uint32
}

func (p *rp2PWM) Configure(freqHz uint64, top uint16) error {
	if freqHz == 0 || top == 0 {
		return errcode.InvalidParams
	}
	sliceFreq.mu.Lock()
	switch cur := sliceFreq.hz[p.slice]; {
	case cur == 0:
		if err := p.ctrl.Configure(machine.PWMConfig{Period: 1e9 / freqHz}); err != nil {
			sliceFreq.mu.Unlock()
			return err
		}
		sliceFreq.hz[p.slice] = freqHz
	case cur != freqHz:
		sliceFreq.mu.Unlock()
		return errcode.PinInUse
	}
	sliceFreq.mu.Unlock()

	machine.Pin(p.pin).Configure(machine.PinConfig{Mode: machine.PinPWM})

	p.mu.Lock()
	p.reqTop = top
	p.hwTop = p.ctrl.Top()
	p.mu.Unlock()
	return nil
}

// Set scales the logical level onto the hardware counter range.
func (p *rp2PWM) Set(level uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.reqTop == 0 || p.hwTop == 0 {
		return
	}
	if level > p.reqTop {
		level = p.reqTop
	}
	p.ctrl.Set(p.ch, uint32(level)*p.hwTop/uint32(p.reqTop))
}
