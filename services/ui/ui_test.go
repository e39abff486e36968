package ui

import (
	"context"
	"reflect"
	"testing"
	"time"

	"menucode-go/bus"
	"menucode-go/dispatch"
	"menucode-go/input/evq"
	"menucode-go/input/mapper"
	"menucode-go/menu"
	"menucode-go/types"
)

type fakeDuty struct{ last []uint8 }

func (f *fakeDuty) SetDuty(p uint8) error { f.last = append(f.last, p); return nil }

type fakeNoise uint32

func (n fakeNoise) InvalidTransitions() uint32 { return uint32(n) }

func testMenu() *types.MenuNode {
	return &types.MenuNode{Label: "Main", Kind: types.NodeSubMenu, Children: []*types.MenuNode{
		{Label: "Start Game", Kind: types.NodeAction, Handler: HandlerStartGame},
		{Label: "Settings", Kind: types.NodeSubMenu, Children: []*types.MenuNode{
			{Label: "Brightness", Kind: types.NodeValue, Key: "brightness", Handler: "backlight", Min: 0, Max: 100, Step: 5, Value: 50, Unit: "%"},
			{Label: "Sound", Kind: types.NodeValue, Key: "sound", Min: 0, Max: 1, Step: 1, Value: 1},
			{Label: "Toggle Sound", Kind: types.NodeAction, Handler: HandlerToggleSound},
			{Label: "Home", Kind: types.NodeAction, Handler: HandlerHome},
		}},
	}}
}

type rig struct {
	svc  *Service
	q    *evq.Queue
	conn *bus.Connection
	pwm  *fakeDuty
	reg  *dispatch.Registry
}

func newRig(t *testing.T, topo mapper.Topology) *rig {
	t.Helper()
	b := bus.NewBus(8)
	conn := b.NewConnection("ui")
	pwm := &fakeDuty{}
	reg := dispatch.New()
	lookup := func(name string) (dispatch.DutySetter, bool) { return pwm, name == "backlight" }
	if err := RegisterHandlers(reg, conn, []string{"backlight", "missing"}, lookup); err != nil {
		t.Fatalf("RegisterHandlers: %v", err)
	}
	tree, err := menu.Build(testMenu(), reg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	q := evq.New(8)
	nav := menu.NewNavigator(tree, reg, menu.Options{Wrap: true})
	return &rig{svc: New(conn, q, topo, nav, fakeNoise(3)), q: q, conn: conn, pwm: pwm, reg: reg}
}

func press(id uint8) types.InputEvent { return types.ButtonEventOf(id, types.ButtonPressed) }
func turn(dir int8) types.InputEvent  { return types.StepEvent(0, dir) }

func TestTopologyIsolation(t *testing.T) {
	two := newRig(t, mapper.TwoButton{Next: 0, Ok: 1})
	knob := newRig(t, mapper.KnobPlusButton{Knob: 0, Ok: 0})

	twoSeq := []types.InputEvent{press(0), press(1), press(0), press(0), press(1), press(0)}
	knobSeq := []types.InputEvent{turn(+1), press(0), turn(+1), turn(+1), press(0), turn(+1)}

	for i := range twoSeq {
		two.svc.Handle(twoSeq[i])
		knob.svc.Handle(knobSeq[i])
		if a, b := two.svc.View(), knob.svc.View(); !reflect.DeepEqual(a, b) {
			t.Fatalf("step %d: views diverge\n two: %+v\nknob: %+v", i, a, b)
		}
	}
	if v := two.svc.View(); v.Title != "Settings" || v.Highlighted() != 3 {
		t.Fatalf("final view = %+v", v)
	}
}

func TestIgnoredEvents(t *testing.T) {
	r := newRig(t, mapper.TwoButton{Next: 0, Ok: 1})
	for _, ev := range []types.InputEvent{
		types.ButtonEventOf(0, types.ButtonReleased),
		types.ButtonEventOf(9, types.ButtonPressed),
		turn(+1),
	} {
		if _, ok := r.svc.Handle(ev); ok {
			t.Fatalf("event %+v was mapped", ev)
		}
	}
}

func TestDimmerThroughMenu(t *testing.T) {
	r := newRig(t, mapper.KnobPlusTwoButton{Knob: 0, Ok: 0, Back: 1})
	r.svc.Prime(r.reg)
	if len(r.pwm.last) != 1 || r.pwm.last[0] != 50 {
		t.Fatalf("prime duties = %v", r.pwm.last)
	}

	// Settings -> Brightness -> edit -> 6 clicks clockwise.
	for _, ev := range []types.InputEvent{turn(+1), press(0), press(0)} {
		r.svc.Handle(ev)
	}
	for i := 0; i < 6; i++ {
		r.svc.Handle(turn(+1))
	}
	if got := r.pwm.last[len(r.pwm.last)-1]; got != 80 {
		t.Fatalf("duty = %d, want 80", got)
	}
	r.svc.Handle(press(1)) // leave editing
	r.svc.Handle(press(1)) // back to root
	if v := r.svc.View(); v.Title != "Main" || v.Highlighted() != 1 {
		t.Fatalf("view = %+v", v)
	}
}

func TestToggleAndHome(t *testing.T) {
	r := newRig(t, mapper.KnobPlusTwoButton{Knob: 0, Ok: 0, Back: 1})
	tree := r.svc.nav.Tree()
	sound, _ := tree.Lookup("sound")
	sig := r.conn.Subscribe(TopicSound)

	// Settings -> Toggle Sound.
	for _, ev := range []types.InputEvent{turn(+1), press(0), turn(+1), turn(+1), press(0)} {
		r.svc.Handle(ev)
	}
	if b, _ := tree.Value(sound); b.Current != 0 {
		t.Fatalf("sound = %d", b.Current)
	}
	select {
	case m := <-sig.Channel():
		if a, ok := m.Payload.(types.ActionSignal); !ok || a.Handler != HandlerToggleSound || a.Label != "Toggle Sound" {
			t.Fatalf("sound signal = %+v", m.Payload)
		}
	default:
		t.Fatal("toggle did not announce the change")
	}
	r.svc.Handle(turn(+1))
	res, _ := r.svc.Handle(press(0)) // Home
	if !res.Reset || r.svc.State().Depth() != 0 {
		t.Fatalf("home did not reset: %+v", res)
	}
}

func waitView(t *testing.T, sub *bus.Subscription, match func(types.View) bool) types.View {
	t.Helper()
	deadline := time.After(500 * time.Millisecond)
	for {
		select {
		case m := <-sub.Channel():
			if v, ok := m.Payload.(types.View); ok && match(v) {
				return v
			}
		case <-deadline:
			t.Fatal("timeout waiting for view")
		}
	}
}

func TestRunPublishesAndResets(t *testing.T) {
	r := newRig(t, mapper.KnobPlusTwoButton{Knob: 0, Ok: 0, Back: 1})
	views := r.conn.Subscribe(TopicView)
	stats := r.conn.Subscribe(TopicStats)
	sub := r.conn.Subscribe(TopicGameStart)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.svc.Run(ctx)

	waitView(t, views, func(v types.View) bool { return v.Title == "Main" })

	r.q.Push(turn(+1))
	r.q.Push(press(0))
	waitView(t, views, func(v types.View) bool { return v.Title == "Settings" })

	r.conn.Publish(r.conn.NewMessage(TopicReset, true, false))
	waitView(t, views, func(v types.View) bool { return v.Title == "Main" && v.Highlighted() == 0 })

	r.q.Push(press(0)) // Start Game publishes and resets
	select {
	case m := <-sub.Channel():
		if sig := m.Payload.(types.ActionSignal); sig.Label != "Start Game" {
			t.Fatalf("signal = %+v", sig)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("game/start not published")
	}

	select {
	case m := <-stats.Channel():
		if st := m.Payload.(types.InputStats); st.InvalidTransitions != 3 {
			t.Fatalf("stats = %+v", st)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("no stats")
	}
}

func TestResetBeforeRunIsKept(t *testing.T) {
	r := newRig(t, mapper.KnobPlusTwoButton{Knob: 0, Ok: 0, Back: 1})
	views := r.conn.Subscribe(TopicView)
	r.svc.Handle(turn(+1))
	r.svc.Handle(press(0))
	if r.svc.State().Depth() != 1 {
		t.Fatal("did not enter Settings")
	}

	// Published before the consumer goroutine exists.
	r.conn.Publish(r.conn.NewMessage(TopicReset, true, false))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.svc.Run(ctx)
	waitView(t, views, func(v types.View) bool { return v.Title == "Main" && v.Highlighted() == 0 })
}

func TestDrainIsBounded(t *testing.T) {
	r := newRig(t, mapper.KnobPlusTwoButton{Knob: 0, Ok: 0, Back: 1})
	for i := 0; i < r.q.Cap(); i++ {
		r.q.Push(turn(+1))
	}
	if !r.svc.drain(turn(+1)) {
		t.Fatal("batch reported no change")
	}
	if r.q.Len() != 1 {
		t.Fatalf("batch left %d queued, want 1", r.q.Len())
	}
}
