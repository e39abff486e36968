// Package ui runs the single consumer of the input queue: it maps raw
// events to commands, drives the navigator and publishes the view.
package ui

import (
	"context"

	"menucode-go/bus"
	"menucode-go/input/evq"
	"menucode-go/input/mapper"
	"menucode-go/menu"
	"menucode-go/types"
)

var (
	TopicView      = bus.T("ui", "view")
	TopicStats     = bus.T("ui", "stats")
	TopicReset     = bus.T("ui", "control", "reset")
	TopicGameStart = bus.T("game", "start")
	TopicSound     = bus.T("game", "sound")
)

// NoiseCounter reports rejected encoder samples (the HAL implements it).
type NoiseCounter interface {
	InvalidTransitions() uint32
}

type Service struct {
	conn  *bus.Connection
	q     *evq.Queue
	topo  mapper.Topology
	nav   *menu.Navigator
	st    *menu.State
	noise NoiseCounter
	reset *bus.Subscription

	stats types.InputStats
}

// New wires a service. noise may be nil. The reset subscription is taken
// here so a reset published before Run starts is still seen.
func New(conn *bus.Connection, q *evq.Queue, topo mapper.Topology, nav *menu.Navigator, noise NoiseCounter) *Service {
	return &Service{
		conn:  conn,
		q:     q,
		topo:  topo,
		nav:   nav,
		st:    nav.NewState(),
		noise: noise,
		reset: conn.Subscribe(TopicReset),
	}
}

func (s *Service) State() *menu.State { return s.st }
func (s *Service) View() types.View   { return s.nav.View(s.st) }

// Handle maps one input event and applies the resulting command. ok is
// false when the topology has no meaning for the event.
func (s *Service) Handle(ev types.InputEvent) (res menu.Result, ok bool) {
	cmd, ok := s.topo.Map(ev)
	if !ok {
		return menu.Result{}, false
	}
	res = s.nav.Apply(s.st, cmd)
	if res.Err != nil {
		println("[ui] handler", res.Handler, "failed:", res.Err.Error())
	}
	return res, true
}

// Prime dispatches the handler of every value node once so that outputs
// start at the configured values.
func (s *Service) Prime(d menu.Dispatcher) {
	t := s.nav.Tree()
	for id := menu.NodeID(0); int(id) < t.Len(); id++ {
		h := t.Handler(id)
		if t.Kind(id) != menu.KindValue || h == "" {
			continue
		}
		if _, err := d.Dispatch(h, menu.ActionContext{Tree: t, Node: id, Handler: h}); err != nil {
			println("[ui] prime", h, "failed:", err.Error())
		}
	}
}

// Reset returns to the root menu. Reports whether anything changed.
func (s *Service) Reset() bool { return s.nav.ResetToRoot(s.st) }

func (s *Service) publishView() {
	s.conn.Publish(s.conn.NewMessage(TopicView, s.View(), true))
}

func (s *Service) publishStats() {
	cur := types.InputStats{Overflow: s.q.Overflow()}
	if s.noise != nil {
		cur.InvalidTransitions = s.noise.InvalidTransitions()
	}
	if cur == s.stats {
		return
	}
	s.stats = cur
	s.conn.Publish(s.conn.NewMessage(TopicStats, cur, true))
}

// drain applies ev and what is queued behind it, at most one queue's
// worth, so steady input cannot starve view publishing or resets.
// Reports whether the view changed.
func (s *Service) drain(ev types.InputEvent) bool {
	dirty := false
	for n := 1; ; n++ {
		if res, ok := s.Handle(ev); ok && res.Changed {
			dirty = true
		}
		if n >= s.q.Cap() {
			return dirty
		}
		var more bool
		if ev, more = s.q.Pop(); !more {
			return dirty
		}
	}
}

// Run consumes input until ctx is cancelled. The view is published once
// per drained batch; reset requests arrive on the bus and are handled
// between batches, never in the middle of one.
func (s *Service) Run(ctx context.Context) {
	defer s.conn.Unsubscribe(s.reset)

	println("[ui] running, topology", s.topo.Name())
	s.publishView()
	s.publishStats()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.q.C():
			if s.drain(ev) {
				s.publishView()
			}
			s.publishStats()
		case _, ok := <-s.reset.Channel():
			if !ok {
				return
			}
			if s.Reset() {
				s.publishView()
			}
		}
	}
}
