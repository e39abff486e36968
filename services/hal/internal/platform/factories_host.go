// services/hal/internal/platform/factories_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"sync"

	"menucode-go/services/hal/internal/halcore"
)

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin and IRQPin for host builds. Set drives the
// level and fires the registered handler synchronously, the way an edge
// interrupt would.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    halcore.Pull
	irqEdge halcore.Edge
	irqFunc func()
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	old := p.level
	p.level = level
	irq := p.irqFunc
	want := irqWanted(p.irqEdge, edgeFrom(old, level))
	p.mu.Unlock()
	if want && irq != nil {
		irq()
	}
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Toggle() { p.Set(!p.Get()) }

func (p *FakePin) Number() int { return p.number }

// Pull reports the pull configured by the last ConfigureInput.
func (p *FakePin) Pull() halcore.Pull {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pull
}

func (p *FakePin) SetIRQ(edge halcore.Edge, handler func()) error {
	p.mu.Lock()
	p.irqEdge = edge
	p.irqFunc = handler
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqEdge = halcore.EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

func edgeFrom(old, new bool) halcore.Edge {
	switch {
	case !old && new:
		return halcore.EdgeRising
	case old && !new:
		return halcore.EdgeFalling
	default:
		return halcore.EdgeNone
	}
}

func irqWanted(cfg, seen halcore.Edge) bool {
	if seen == halcore.EdgeNone {
		return false
	}
	return cfg == halcore.EdgeBoth || cfg == seen
}

// ----------------------------- PWM (host) ------------------------------------

// FakePWM records the last configuration and level.
type FakePWM struct {
	mu     sync.Mutex
	FreqHz uint64
	Top    uint16
	level  uint16
	writes int
}

func (p *FakePWM) Configure(freqHz uint64, top uint16) error {
	p.mu.Lock()
	p.FreqHz, p.Top = freqHz, top
	p.mu.Unlock()
	return nil
}

func (p *FakePWM) Set(level uint16) {
	p.mu.Lock()
	p.level = level
	p.writes++
	p.mu.Unlock()
}

// Level returns the last physical level written and the write count.
func (p *FakePWM) Level() (uint16, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, p.writes
}

// ----------------------------- Factory (host) --------------------------------

// HostFactory returns stable fakes per GPIO number. It serves as both the
// pin and the PWM factory.
type HostFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
	pwms map[int]*FakePWM
}

func NewHostFactory() *HostFactory {
	return &HostFactory{pins: make(map[int]*FakePin), pwms: make(map[int]*FakePWM)}
}

func (f *HostFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	return f.Pin(n), true
}

func (f *HostFactory) PWMByPin(n int) (halcore.PWM, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pwms[n]
	if !ok {
		p = &FakePWM{}
		f.pwms[n] = p
	}
	return p, true
}

// Pin exposes the underlying *FakePin so tests and the simulator can drive
// levels.
func (f *HostFactory) Pin(n int) *FakePin {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p
}

// PWM exposes the *FakePWM on pin n, if one was handed out.
func (f *HostFactory) PWM(n int) (*FakePWM, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pwms[n]
	return p, ok
}

var hostDefault = NewHostFactory()

// DefaultPinFactory provides the shared host GPIO factory.
func DefaultPinFactory() halcore.PinFactory { return hostDefault }

// DefaultPWMFactory provides the shared host PWM factory.
func DefaultPWMFactory() halcore.PWMFactory { return hostDefault }

// Host returns the shared host factory for direct pin access.
func Host() *HostFactory { return hostDefault }
