package dispatch

import (
	"errors"
	"testing"
	"time"

	"menucode-go/bus"
	"menucode-go/errcode"
	"menucode-go/menu"
	"menucode-go/types"
)

type fakePWM struct {
	duties []uint8
	err    error
}

func (f *fakePWM) SetDuty(pct uint8) error {
	f.duties = append(f.duties, pct)
	return f.err
}

func buildTree(t *testing.T, r *Registry) *menu.Tree {
	t.Helper()
	cfg := &types.MenuNode{Label: "Main", Kind: types.NodeSubMenu, Children: []*types.MenuNode{
		{Label: "Start Game", Kind: types.NodeAction, Handler: "start"},
		{Label: "Light", Kind: types.NodeValue, Key: "light", Handler: "dim", Min: 0, Max: 100, Step: 10, Value: 40},
		{Label: "Enabled", Kind: types.NodeValue, Key: "enabled", Min: 0, Max: 1, Step: 1, Value: 0},
		{Label: "Flip", Kind: types.NodeAction, Handler: "flip"},
	}}
	tree, err := menu.Build(cfg, r)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tree
}

func ctxFor(t *testing.T, tree *menu.Tree, label, handler string) menu.ActionContext {
	t.Helper()
	for _, id := range tree.Children(tree.Root()) {
		if tree.Label(id) == label {
			return menu.ActionContext{Tree: tree, Node: id, Handler: handler}
		}
	}
	t.Fatalf("no node %q", label)
	return menu.ActionContext{}
}

func register(t *testing.T, r *Registry, id string, h Handler) {
	t.Helper()
	if err := r.Register(id, h); err != nil {
		t.Fatalf("Register(%q): %v", id, err)
	}
}

func TestRegisterRejects(t *testing.T) {
	r := New()
	if err := r.Register("a", Noop); err != nil {
		t.Fatalf("Register: %v", err)
	}
	cases := []struct {
		name string
		id   string
		h    Handler
		want errcode.Code
	}{
		{"duplicate", "a", Noop, errcode.DuplicateHandle},
		{"empty id", "", Noop, errcode.InvalidParams},
		{"nil handler", "b", nil, errcode.InvalidParams},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := errcode.Of(r.Register(tc.id, tc.h)); got != tc.want {
				t.Fatalf("code = %s, want %s", got, tc.want)
			}
		})
	}
	if !r.Has("a") || r.Has("b") || len(r.IDs()) != 1 {
		t.Fatal("registry contents changed by rejected registrations")
	}
}

func TestDispatchUnknown(t *testing.T) {
	r := New()
	_, err := r.Dispatch("missing", menu.ActionContext{})
	if errcode.Of(err) != errcode.UnknownHandler {
		t.Fatalf("err = %v", err)
	}
}

func TestPWMDimmer(t *testing.T) {
	r := New()
	pwm := &fakePWM{}
	register(t, r, "start", Noop)
	register(t, r, "flip", Noop)
	register(t, r, "dim", PWMDimmer(pwm, ""))
	tree := buildTree(t, r)

	ctx := ctxFor(t, tree, "Light", "dim")
	if _, err := r.Dispatch("dim", ctx); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	tree.Adjust(ctx.Node, 1)
	if _, err := r.Dispatch("dim", ctx); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(pwm.duties) != 2 || pwm.duties[0] != 40 || pwm.duties[1] != 50 {
		t.Fatalf("duties = %v", pwm.duties)
	}

	pwm.err = errors.New("pwm fault")
	if _, err := r.Dispatch("dim", ctx); !errors.Is(err, pwm.err) {
		t.Fatalf("err = %v", err)
	}

	// Called from an action node, the handler needs a key.
	bad := PWMDimmer(pwm, "")
	if _, err := bad(ctxFor(t, tree, "Start Game", "start")); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("action node err = %v", err)
	}
	pwm.err = nil
	pwm.duties = nil
	byKey := PWMDimmer(pwm, "light")
	if _, err := byKey(ctxFor(t, tree, "Start Game", "start")); err != nil {
		t.Fatalf("keyed dimmer: %v", err)
	}
	// Light was stepped from 40 to 50 above.
	if len(pwm.duties) != 1 || pwm.duties[0] != 50 {
		t.Fatalf("keyed duties = %v", pwm.duties)
	}
}

func TestToggle(t *testing.T) {
	r := New()
	register(t, r, "start", Noop)
	register(t, r, "dim", Noop)
	register(t, r, "flip", Toggle("enabled"))
	tree := buildTree(t, r)
	id, _ := tree.Lookup("enabled")

	ctx := ctxFor(t, tree, "Flip", "flip")
	for _, want := range []int{1, 0, 1} {
		if _, err := r.Dispatch("flip", ctx); err != nil {
			t.Fatalf("Dispatch: %v", err)
		}
		if b, _ := tree.Value(id); b.Current != want {
			t.Fatalf("enabled = %d, want %d", b.Current, want)
		}
	}
	if _, err := Toggle("nope")(ctx); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("unknown key err = %v", err)
	}
}

func TestPublish(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("menu")
	sub := conn.Subscribe(bus.T("game", "start"))

	r := New()
	register(t, r, "start", Publish(conn, bus.T("game", "start"), true))
	register(t, r, "dim", Noop)
	register(t, r, "flip", Noop)
	tree := buildTree(t, r)

	out, err := r.Dispatch("start", ctxFor(t, tree, "Start Game", "start"))
	if err != nil || !out.ResetToRoot {
		t.Fatalf("out=%+v err=%v", out, err)
	}
	select {
	case m := <-sub.Channel():
		sig, ok := m.Payload.(types.ActionSignal)
		if !ok || sig.Handler != "start" || sig.Label != "Start Game" || sig.TSms == 0 {
			t.Fatalf("payload = %#v", m.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no action signal published")
	}
}

func TestChain(t *testing.T) {
	var order []string
	step := func(name string, reset bool, err error) Handler {
		return func(menu.ActionContext) (menu.Outcome, error) {
			order = append(order, name)
			return menu.Outcome{ResetToRoot: reset}, err
		}
	}
	out, err := Chain(step("a", false, nil), step("b", true, nil), step("c", false, nil))(menu.ActionContext{})
	if err != nil || !out.ResetToRoot || len(order) != 3 {
		t.Fatalf("out=%+v err=%v order=%v", out, err, order)
	}

	order = nil
	boom := errors.New("boom")
	_, err = Chain(step("a", false, boom), step("b", false, nil))(menu.ActionContext{})
	if !errors.Is(err, boom) || len(order) != 1 {
		t.Fatalf("err=%v order=%v", err, order)
	}
}
