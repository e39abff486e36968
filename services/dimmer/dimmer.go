// Package dimmer is the menu-less control path: one knob adjusts a bounded
// value that is forwarded to a PWM output, and an optional button switches
// the output off and back on at the last level.
package dimmer

import (
	"context"

	"menucode-go/dispatch"
	"menucode-go/errcode"
	"menucode-go/input/evq"
	"menucode-go/menu"
	"menucode-go/types"
)

type Service struct {
	cfg   types.DimmerConfig
	q     *evq.Queue
	out   dispatch.DutySetter
	value menu.Bounded
	on    bool
}

func New(cfg types.DimmerConfig, q *evq.Queue, out dispatch.DutySetter) (*Service, error) {
	if cfg.Step == 0 && cfg.Min == 0 && cfg.Max == 0 {
		cfg.Max, cfg.Step = 100, 5
	}
	v := menu.Bounded{Min: cfg.Min, Max: cfg.Max, Step: cfg.Step, Current: cfg.Initial}
	if cfg.Min > cfg.Max || cfg.Step <= 0 || cfg.Initial < cfg.Min || cfg.Initial > cfg.Max {
		return nil, &errcode.E{C: errcode.InvalidBounds, Op: "dimmer"}
	}
	return &Service{cfg: cfg, q: q, out: out, value: v, on: true}, nil
}

func (s *Service) Value() int { return s.value.Current }
func (s *Service) On() bool   { return s.on }

// Duty is the percentage currently requested from the output.
func (s *Service) Duty() uint8 {
	if !s.on || s.value.Max == s.value.Min {
		if s.on {
			return 100
		}
		return 0
	}
	return uint8((s.value.Current - s.value.Min) * 100 / (s.value.Max - s.value.Min))
}

func (s *Service) apply() error { return s.out.SetDuty(s.Duty()) }

// Handle applies one input event. Steps while switched off adjust the
// stored level without lighting the output.
func (s *Service) Handle(ev types.InputEvent) (bool, error) {
	switch ev.Kind {
	case types.InputStep:
		if ev.Step.Knob != s.cfg.Knob || !s.value.Adjust(int(ev.Step.Dir)) {
			return false, nil
		}
		if !s.on {
			return true, nil
		}
	case types.InputButton:
		b := ev.Button
		if s.cfg.Button == nil || b.ID != *s.cfg.Button || b.Kind != types.ButtonPressed {
			return false, nil
		}
		s.on = !s.on
	default:
		return false, nil
	}
	return true, s.apply()
}

// Run applies the initial level and consumes input until ctx is done.
func (s *Service) Run(ctx context.Context) {
	if err := s.apply(); err != nil {
		println("[dimmer] initial duty failed:", err.Error())
	}
	println("[dimmer] running, level", s.value.Current)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.q.C():
			if _, err := s.Handle(ev); err != nil {
				println("[dimmer] set duty failed:", err.Error())
			}
		}
	}
}
