// Package debounce settles raw button levels sampled on a fixed tick.
package debounce

import (
	"time"

	"menucode-go/types"
)

const (
	DefaultWindow    = 5 * time.Millisecond
	DefaultLongPress = 600 * time.Millisecond
)

type Config struct {
	Buttons   int           // number of button ids, 0..Buttons-1
	Window    time.Duration // stability required before a level is accepted
	LongPress time.Duration // hold time for LongPressed; <0 disables
}

// button is the per-line raw state. Only the sampling context touches it.
type button struct {
	level        bool // settled level
	pending      bool
	pendingLevel bool
	pendingSince time.Time
	pressedAt    time.Time
	longFired    bool
}

type Debouncer struct {
	window    time.Duration
	longPress time.Duration
	buttons   []button
}

func New(cfg Config) *Debouncer {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.LongPress == 0 {
		cfg.LongPress = DefaultLongPress
	}
	return &Debouncer{
		window:    cfg.Window,
		longPress: cfg.LongPress,
		buttons:   make([]button, cfg.Buttons),
	}
}

// Seed sets the settled level of a button without emitting an event.
func (d *Debouncer) Seed(id uint8, level bool, now time.Time) {
	if int(id) >= len(d.buttons) {
		return
	}
	d.buttons[id] = button{level: level, pressedAt: now, longFired: level}
}

// Level returns the settled level of a button.
func (d *Debouncer) Level(id uint8) bool {
	if int(id) >= len(d.buttons) {
		return false
	}
	return d.buttons[id].level
}

// OnLevelSample feeds one sample of a button line (true = pressed). At most one
// event is returned per sample.
func (d *Debouncer) OnLevelSample(id uint8, level bool, now time.Time) (types.ButtonEvent, bool) {
	if int(id) >= len(d.buttons) {
		return types.ButtonEvent{}, false
	}
	b := &d.buttons[id]

	switch {
	case level == b.level:
		// Flicker that came back before settling is forgotten.
		b.pending = false
	case b.pending && b.pendingLevel == level:
		if now.Sub(b.pendingSince) >= d.window {
			b.level = level
			b.pending = false
			if level {
				b.pressedAt = now
				b.longFired = false
				return types.ButtonEvent{ID: id, Kind: types.ButtonPressed}, true
			}
			return types.ButtonEvent{ID: id, Kind: types.ButtonReleased}, true
		}
		return types.ButtonEvent{}, false
	default:
		b.pending = true
		b.pendingLevel = level
		b.pendingSince = now
		return types.ButtonEvent{}, false
	}

	if b.level && !b.longFired && d.longPress > 0 && now.Sub(b.pressedAt) >= d.longPress {
		b.longFired = true
		return types.ButtonEvent{ID: id, Kind: types.ButtonLongPressed}, true
	}
	return types.ButtonEvent{}, false
}
