package dimmer

import (
	"context"
	"testing"
	"time"

	"menucode-go/errcode"
	"menucode-go/input/evq"
	"menucode-go/types"
)

type fakeDuty struct{ duties []uint8 }

func (f *fakeDuty) SetDuty(p uint8) error { f.duties = append(f.duties, p); return nil }

func (f *fakeDuty) last() uint8 {
	if len(f.duties) == 0 {
		return 255
	}
	return f.duties[len(f.duties)-1]
}

func newDimmer(t *testing.T, button *uint8) (*Service, *fakeDuty) {
	t.Helper()
	out := &fakeDuty{}
	s, err := New(types.DimmerConfig{Knob: 0, Min: 0, Max: 100, Step: 5, Initial: 50, Button: button}, evq.New(4), out)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, out
}

func TestStepsSaturate(t *testing.T) {
	s, out := newDimmer(t, nil)
	for i := 0; i < 6; i++ {
		s.Handle(types.StepEvent(0, +1))
	}
	if s.Value() != 80 || out.last() != 80 {
		t.Fatalf("value=%d duty=%d", s.Value(), out.last())
	}
	for i := 0; i < 30; i++ {
		s.Handle(types.StepEvent(0, +1))
	}
	if s.Value() != 100 {
		t.Fatalf("value=%d", s.Value())
	}
	n := len(out.duties)
	if changed, _ := s.Handle(types.StepEvent(0, +1)); changed || len(out.duties) != n {
		t.Fatal("step at max reached the output")
	}
	for i := 0; i < 30; i++ {
		s.Handle(types.StepEvent(0, -1))
	}
	if s.Value() != 0 || out.last() != 0 {
		t.Fatalf("value=%d duty=%d", s.Value(), out.last())
	}
}

func TestOtherKnobIgnored(t *testing.T) {
	s, out := newDimmer(t, nil)
	if changed, _ := s.Handle(types.StepEvent(1, +1)); changed || len(out.duties) != 0 {
		t.Fatal("foreign knob adjusted the dimmer")
	}
}

func TestToggleButton(t *testing.T) {
	id := uint8(2)
	s, out := newDimmer(t, &id)

	s.Handle(types.ButtonEventOf(2, types.ButtonReleased))
	if !s.On() {
		t.Fatal("release toggled")
	}
	s.Handle(types.ButtonEventOf(2, types.ButtonPressed))
	if s.On() || out.last() != 0 {
		t.Fatalf("off: on=%v duty=%d", s.On(), out.last())
	}
	// Adjust while off: stored, not applied.
	s.Handle(types.StepEvent(0, +1))
	if s.Value() != 55 || out.last() != 0 {
		t.Fatalf("value=%d duty=%d", s.Value(), out.last())
	}
	s.Handle(types.ButtonEventOf(2, types.ButtonPressed))
	if !s.On() || out.last() != 55 {
		t.Fatalf("on: duty=%d", out.last())
	}
}

func TestScaledRange(t *testing.T) {
	out := &fakeDuty{}
	s, err := New(types.DimmerConfig{Min: 10, Max: 20, Step: 1, Initial: 15}, evq.New(4), out)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Duty() != 50 {
		t.Fatalf("duty = %d", s.Duty())
	}
}

func TestInvalidBounds(t *testing.T) {
	for _, c := range []types.DimmerConfig{
		{Min: 10, Max: 0, Step: 1},
		{Min: 0, Max: 10, Step: 0, Initial: 1},
		{Min: 0, Max: 10, Step: 1, Initial: 11},
	} {
		if _, err := New(c, evq.New(1), &fakeDuty{}); errcode.Of(err) != errcode.InvalidBounds {
			t.Fatalf("%+v: err = %v", c, err)
		}
	}
}

type chanDuty chan uint8

func (c chanDuty) SetDuty(p uint8) error { c <- p; return nil }

func TestRunConsumesQueue(t *testing.T) {
	out := make(chanDuty, 4)
	q := evq.New(4)
	s, _ := New(types.DimmerConfig{Max: 100, Step: 10, Initial: 20}, q, out)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	q.Push(types.StepEvent(0, +1))
	for _, want := range []uint8{20, 30} {
		select {
		case got := <-out:
			if got != want {
				t.Fatalf("duty = %d, want %d", got, want)
			}
		case <-time.After(500 * time.Millisecond):
			t.Fatalf("timeout waiting for duty %d", want)
		}
	}
}
