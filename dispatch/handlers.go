package dispatch

import (
	"menucode-go/bus"
	"menucode-go/errcode"
	"menucode-go/menu"
	"menucode-go/types"
	"menucode-go/x/mathx"
	"menucode-go/x/timex"
)

// DutySetter is the PWM side of a dimmer.
type DutySetter interface {
	SetDuty(pct uint8) error
}

// target resolves key to a value node, falling back to the node that
// triggered the call.
func target(ctx menu.ActionContext, key string) (menu.NodeID, menu.Bounded, error) {
	id := ctx.Node
	if key != "" {
		var ok bool
		if id, ok = ctx.Tree.Lookup(key); !ok {
			return menu.NoNode, menu.Bounded{}, &errcode.E{C: errcode.InvalidParams, Op: ctx.Handler, Msg: "no node with key " + key}
		}
	}
	b, ok := ctx.Tree.Value(id)
	if !ok {
		return menu.NoNode, menu.Bounded{}, &errcode.E{C: errcode.InvalidParams, Op: ctx.Handler, Msg: "not a value node"}
	}
	return id, b, nil
}

// PWMDimmer forwards the current value of the node with the given key (or
// the triggering node when key is empty) to out as a percentage.
func PWMDimmer(out DutySetter, key string) Handler {
	return func(ctx menu.ActionContext) (menu.Outcome, error) {
		_, b, err := target(ctx, key)
		if err != nil {
			return menu.Outcome{}, err
		}
		return menu.Outcome{}, out.SetDuty(uint8(mathx.Clamp(b.Current, 0, 100)))
	}
}

// Publish announces the action on topic. The payload is a
// types.ActionSignal; reset asks the navigator to return to the root.
func Publish(conn *bus.Connection, topic bus.Topic, reset bool) Handler {
	return func(ctx menu.ActionContext) (menu.Outcome, error) {
		sig := types.ActionSignal{
			Handler: ctx.Handler,
			Label:   ctx.Tree.Label(ctx.Node),
			TSms:    timex.NowMs(),
		}
		conn.Publish(conn.NewMessage(topic, sig, false))
		return menu.Outcome{ResetToRoot: reset}, nil
	}
}

// Toggle flips the value node with the given key between its bounds.
func Toggle(key string) Handler {
	return func(ctx menu.ActionContext) (menu.Outcome, error) {
		id, b, err := target(ctx, key)
		if err != nil {
			return menu.Outcome{}, err
		}
		next := b.Min
		if b.Current == b.Min {
			next = b.Max
		}
		ctx.Tree.SetValue(id, next)
		return menu.Outcome{}, nil
	}
}

// Chain runs handlers in order, stopping at the first error. The outcome
// requests a reset if any handler did.
func Chain(hs ...Handler) Handler {
	return func(ctx menu.ActionContext) (menu.Outcome, error) {
		var out menu.Outcome
		for _, h := range hs {
			o, err := h(ctx)
			if err != nil {
				return out, err
			}
			out.ResetToRoot = out.ResetToRoot || o.ResetToRoot
		}
		return out, nil
	}
}

// Noop accepts the action and does nothing.
func Noop(menu.ActionContext) (menu.Outcome, error) { return menu.Outcome{}, nil }
