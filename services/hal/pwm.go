// services/hal/pwm.go
package hal

import (
	"sync"

	"menucode-go/bus"
	"menucode-go/services/hal/internal/consts"
	"menucode-go/types"
	"menucode-go/x/mathx"
)

// PWMOutput drives one PWM channel with a logical level in 0..Top. When
// ActiveLow is set the physical output is inverted. Every change is
// published retained on hal/cap/io/pwm/<name>/value.
type PWMOutput struct {
	name      string
	pin       int
	pwm       PWM
	freq      uint64
	top       uint16
	activeLow bool
	conn      *bus.Connection

	mu    sync.Mutex
	level uint16
}

func newPWMOutput(conn *bus.Connection, cfg types.PWMConfig, pwm PWM) *PWMOutput {
	return &PWMOutput{
		name:      cfg.Name,
		pin:       cfg.Pin,
		pwm:       pwm,
		freq:      cfg.FreqHz,
		top:       cfg.Top,
		activeLow: cfg.ActiveLow,
		conn:      conn,
	}
}

func (o *PWMOutput) Name() string { return o.name }
func (o *PWMOutput) Top() uint16  { return o.top }

func (o *PWMOutput) topic(leaf string) bus.Topic {
	return bus.T(consts.TokHAL, consts.TokCap, consts.TokIO, string(types.KindPWM), o.name, leaf)
}

func (o *PWMOutput) init() error {
	if err := o.pwm.Configure(o.freq, o.top); err != nil {
		return err
	}
	o.conn.Publish(o.conn.NewMessage(o.topic(consts.TokInfo), types.Info{
		SchemaVersion: 1,
		Driver:        "pwm_out",
		Detail: types.PWMInfo{
			Pin:       o.pin,
			FreqHz:    o.freq,
			Top:       o.top,
			ActiveLow: o.activeLow,
		},
	}, true))
	return o.SetLevel(0)
}

func (o *PWMOutput) toPhys(logical uint16) uint16 {
	if !o.activeLow {
		return logical
	}
	return o.top - logical
}

// SetLevel writes a logical level, clamped to Top.
func (o *PWMOutput) SetLevel(level uint16) error {
	level = mathx.Clamp(level, 0, o.top)
	o.mu.Lock()
	o.level = level
	o.pwm.Set(o.toPhys(level))
	o.mu.Unlock()

	o.conn.Publish(o.conn.NewMessage(o.topic(consts.TokValue), types.PWMValue{
		Level: level,
		Duty:  mathx.ToPercent(level, o.top),
	}, true))
	return nil
}

// SetDuty writes pct percent of Top; values above 100 saturate.
func (o *PWMOutput) SetDuty(pct uint8) error {
	return o.SetLevel(mathx.PercentOf(pct, o.top))
}

func (o *PWMOutput) Level() uint16 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.level
}

func (o *PWMOutput) Duty() uint8 { return mathx.ToPercent(o.Level(), o.top) }
