package mapper

import (
	"testing"

	"menucode-go/errcode"
	"menucode-go/types"
)

var (
	stepUp   = types.StepEvent(0, 1)
	stepDown = types.StepEvent(0, -1)
)

func press(id uint8) types.InputEvent   { return types.ButtonEventOf(id, types.ButtonPressed) }
func release(id uint8) types.InputEvent { return types.ButtonEventOf(id, types.ButtonReleased) }
func long(id uint8) types.InputEvent    { return types.ButtonEventOf(id, types.ButtonLongPressed) }

func TestMapping(t *testing.T) {
	two := TwoButton{Next: 0, Ok: 1}
	knob := KnobPlusButton{Knob: 0, Ok: 0}
	knob2 := KnobPlusTwoButton{Knob: 0, Ok: 0, Back: 1}

	cases := []struct {
		name string
		topo Topology
		ev   types.InputEvent
		want types.Command
		ok   bool
	}{
		{"two next", two, press(0), types.CmdNext, true},
		{"two ok", two, press(1), types.CmdOk, true},
		{"two ignores steps", two, stepUp, types.CmdNone, false},
		{"two ignores release", two, release(1), types.CmdNone, false},
		{"two ignores long press by default", two, long(1), types.CmdNone, false},
		{"two ignores foreign button", two, press(5), types.CmdNone, false},

		{"knob cw", knob, stepUp, types.CmdNext, true},
		{"knob ccw", knob, stepDown, types.CmdPrev, true},
		{"knob ok", knob, press(0), types.CmdOk, true},
		{"knob other knob", knob, types.StepEvent(1, 1), types.CmdNone, false},
		{"knob foreign button", knob, press(1), types.CmdNone, false},

		{"knob2 cw", knob2, stepUp, types.CmdNext, true},
		{"knob2 ccw", knob2, stepDown, types.CmdPrev, true},
		{"knob2 ok", knob2, press(0), types.CmdOk, true},
		{"knob2 back", knob2, press(1), types.CmdBack, true},
		{"knob2 back release", knob2, release(1), types.CmdNone, false},
		{"knob2 long press", knob2, long(1), types.CmdNone, false},

		{"none event", knob2, types.InputEvent{}, types.CmdNone, false},
	}
	for _, c := range cases {
		got, ok := c.topo.Map(c.ev)
		if got != c.want || ok != c.ok {
			t.Fatalf("%s: got (%v,%v) want (%v,%v)", c.name, got, ok, c.want, c.ok)
		}
	}
}

func TestLongPressBackOptIn(t *testing.T) {
	cases := []struct {
		name string
		evs  []types.InputEvent
		want []types.Command
	}{
		{"short press is ok on release", []types.InputEvent{press(1), release(1)}, []types.Command{types.CmdOk}},
		{"long press is back only", []types.InputEvent{press(1), long(1), release(1)}, []types.Command{types.CmdBack}},
		{"next passes through", []types.InputEvent{press(0), long(0), release(0)}, []types.Command{types.CmdNext}},
		{"stray release ignored", []types.InputEvent{release(1)}, nil},
	}
	for _, c := range cases {
		topo := &LongPressBack{Inner: TwoButton{Next: 0, Ok: 1}, Ok: 1}
		var got []types.Command
		for _, ev := range c.evs {
			if cmd, ok := topo.Map(ev); ok {
				got = append(got, cmd)
			}
		}
		if len(got) != len(c.want) {
			t.Fatalf("%s: got %v want %v", c.name, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%s: got %v want %v", c.name, got, c.want)
			}
		}
	}

	knob, err := FromConfig(types.TopologyConfig{Kind: types.TopologyKnobPlusButton, Ok: 2, LongPressBack: true})
	if err != nil {
		t.Fatal(err)
	}
	if knob.Name() != types.TopologyKnobPlusButton {
		t.Fatalf("name %q", knob.Name())
	}
	if cmd, ok := knob.Map(stepUp); !ok || cmd != types.CmdNext {
		t.Fatalf("knob step: %v %v", cmd, ok)
	}
	knob.Map(press(2))
	if cmd, ok := knob.Map(long(2)); !ok || cmd != types.CmdBack {
		t.Fatalf("knob long: %v %v", cmd, ok)
	}
}

func TestFromConfig(t *testing.T) {
	cases := []struct {
		cfg  types.TopologyConfig
		name string
		code errcode.Code
	}{
		{types.TopologyConfig{Kind: types.TopologyTwoButton, Next: 0, Ok: 1}, types.TopologyTwoButton, errcode.OK},
		{types.TopologyConfig{Kind: types.TopologyKnobPlusButton}, types.TopologyKnobPlusButton, errcode.OK},
		{types.TopologyConfig{Kind: types.TopologyKnobPlusTwoButton, Ok: 0, Back: 1}, types.TopologyKnobPlusTwoButton, errcode.OK},
		{types.TopologyConfig{Kind: types.TopologyTwoButton, Next: 1, Ok: 1}, "", errcode.InvalidParams},
		{types.TopologyConfig{Kind: types.TopologyKnobPlusTwoButton, Ok: 2, Back: 2}, "", errcode.InvalidParams},
		{types.TopologyConfig{Kind: "joystick"}, "", errcode.UnknownTopology},
	}
	for _, c := range cases {
		topo, err := FromConfig(c.cfg)
		if code := errcode.Of(err); code != c.code {
			t.Fatalf("%+v: code %q want %q", c.cfg, code, c.code)
		}
		if err == nil && topo.Name() != c.name {
			t.Fatalf("%+v: name %q want %q", c.cfg, topo.Name(), c.name)
		}
	}
}

func TestRequires(t *testing.T) {
	cases := []struct {
		cfg            types.TopologyConfig
		knobs, buttons string
	}{
		{types.TopologyConfig{Kind: types.TopologyTwoButton, Next: 2, Ok: 3}, "", "\x02\x03"},
		{types.TopologyConfig{Kind: types.TopologyKnobPlusButton, Knob: 1, Ok: 4}, "\x01", "\x04"},
		{types.TopologyConfig{Kind: types.TopologyKnobPlusTwoButton, Ok: 0, Back: 5}, "\x00", "\x00\x05"},
		{types.TopologyConfig{Kind: "joystick"}, "", ""},
	}
	for _, c := range cases {
		k, b := Requires(c.cfg)
		if string(k) != c.knobs || string(b) != c.buttons {
			t.Fatalf("%s: knobs %v buttons %v", c.cfg.Kind, k, b)
		}
	}
}
