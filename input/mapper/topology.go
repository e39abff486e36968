// Package mapper maps raw steps and button events onto the canonical
// navigation commands for the physical control layout chosen at init.
package mapper

import (
	"menucode-go/errcode"
	"menucode-go/types"
)

// Topology is one physical control layout. Inputs that are not part of the
// layout are ignored.
type Topology interface {
	Map(ev types.InputEvent) (types.Command, bool)
	Name() string
}

// TwoButton: a "next" button and an "ok" button. No Prev, no Back.
type TwoButton struct {
	Next, Ok uint8
}

func (t TwoButton) Name() string { return types.TopologyTwoButton }

func (t TwoButton) Map(ev types.InputEvent) (types.Command, bool) {
	if ev.Kind != types.InputButton {
		return types.CmdNone, false
	}
	b := ev.Button
	switch {
	case b.Kind == types.ButtonPressed && b.ID == t.Next:
		return types.CmdNext, true
	case b.Kind == types.ButtonPressed && b.ID == t.Ok:
		return types.CmdOk, true
	}
	return types.CmdNone, false
}

// KnobPlusButton: an encoder for Next/Prev and its push button for Ok.
type KnobPlusButton struct {
	Knob, Ok uint8
}

func (t KnobPlusButton) Name() string { return types.TopologyKnobPlusButton }

func (t KnobPlusButton) Map(ev types.InputEvent) (types.Command, bool) {
	switch ev.Kind {
	case types.InputStep:
		return mapStep(ev.Step, t.Knob)
	case types.InputButton:
		b := ev.Button
		if b.ID == t.Ok && b.Kind == types.ButtonPressed {
			return types.CmdOk, true
		}
	}
	return types.CmdNone, false
}

// KnobPlusTwoButton adds a dedicated Back button.
type KnobPlusTwoButton struct {
	Knob, Ok, Back uint8
}

func (t KnobPlusTwoButton) Name() string { return types.TopologyKnobPlusTwoButton }

func (t KnobPlusTwoButton) Map(ev types.InputEvent) (types.Command, bool) {
	switch ev.Kind {
	case types.InputStep:
		return mapStep(ev.Step, t.Knob)
	case types.InputButton:
		if ev.Button.Kind != types.ButtonPressed {
			return types.CmdNone, false
		}
		switch ev.Button.ID {
		case t.Ok:
			return types.CmdOk, true
		case t.Back:
			return types.CmdBack, true
		}
	}
	return types.CmdNone, false
}

// LongPressBack gives a layout without a back button a Back command: a
// long press of Ok. Ok is then taken on release of a short press, so a
// long press never activates the highlighted item first. It keeps state
// and must only be used from the single consumer.
type LongPressBack struct {
	Inner Topology
	Ok    uint8

	held bool // Ok is down and has not gone long
}

func (t *LongPressBack) Name() string { return t.Inner.Name() }

func (t *LongPressBack) Map(ev types.InputEvent) (types.Command, bool) {
	if ev.Kind != types.InputButton || ev.Button.ID != t.Ok {
		return t.Inner.Map(ev)
	}
	switch ev.Button.Kind {
	case types.ButtonPressed:
		t.held = true
	case types.ButtonLongPressed:
		if t.held {
			t.held = false
			return types.CmdBack, true
		}
	case types.ButtonReleased:
		if t.held {
			t.held = false
			return types.CmdOk, true
		}
	}
	return types.CmdNone, false
}

func mapStep(st types.EncoderStep, knob uint8) (types.Command, bool) {
	if st.Knob != knob {
		return types.CmdNone, false
	}
	switch st.Dir {
	case +1:
		return types.CmdNext, true
	case -1:
		return types.CmdPrev, true
	}
	return types.CmdNone, false
}

// FromConfig selects the topology declared in the device description.
func FromConfig(c types.TopologyConfig) (Topology, error) {
	switch c.Kind {
	case types.TopologyTwoButton:
		if c.Next == c.Ok {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "topology", Msg: "next and ok share a button"}
		}
		return withLongPress(TwoButton{Next: c.Next, Ok: c.Ok}, c), nil
	case types.TopologyKnobPlusButton:
		return withLongPress(KnobPlusButton{Knob: c.Knob, Ok: c.Ok}, c), nil
	case types.TopologyKnobPlusTwoButton:
		if c.Back == c.Ok {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "topology", Msg: "back and ok share a button"}
		}
		return KnobPlusTwoButton{Knob: c.Knob, Ok: c.Ok, Back: c.Back}, nil
	default:
		return nil, &errcode.E{C: errcode.UnknownTopology, Op: "topology", Msg: c.Kind}
	}
}

// Requires lists the encoder and button ids the topology reads. Unknown
// kinds require nothing; FromConfig rejects them.
func Requires(c types.TopologyConfig) (knobs, buttons []uint8) {
	switch c.Kind {
	case types.TopologyTwoButton:
		return nil, []uint8{c.Next, c.Ok}
	case types.TopologyKnobPlusButton:
		return []uint8{c.Knob}, []uint8{c.Ok}
	case types.TopologyKnobPlusTwoButton:
		return []uint8{c.Knob}, []uint8{c.Ok, c.Back}
	}
	return nil, nil
}

func withLongPress(t Topology, c types.TopologyConfig) Topology {
	if !c.LongPressBack {
		return t
	}
	return &LongPressBack{Inner: t, Ok: c.Ok}
}
