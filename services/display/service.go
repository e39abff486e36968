package display

import (
	"context"

	"menucode-go/bus"
	"menucode-go/types"
)

// Renderer draws one view.
type Renderer interface {
	Render(v types.View) error
}

// Service renders every view published on topic. When views arrive faster
// than the renderer can draw, only the newest one is drawn.
type Service struct {
	conn  *bus.Connection
	topic bus.Topic
	r     Renderer

	rendered uint32
	failed   uint32
}

func NewService(conn *bus.Connection, topic bus.Topic, r Renderer) *Service {
	return &Service{conn: conn, topic: topic, r: r}
}

func (s *Service) Run(ctx context.Context) {
	sub := s.conn.Subscribe(s.topic)
	defer s.conn.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-sub.Channel():
			if !ok {
				return
			}
			m = latest(sub, m)
			v, ok := m.Payload.(types.View)
			if !ok {
				continue
			}
			if err := s.r.Render(v); err != nil {
				s.failed++
				if s.failed == 1 {
					println("[display] render failed:", err.Error())
				}
				continue
			}
			s.rendered++
		}
	}
}

// latest drops queued messages older than the newest one.
func latest(sub *bus.Subscription, m *bus.Message) *bus.Message {
	for {
		select {
		case n, ok := <-sub.Channel():
			if !ok {
				return m
			}
			m = n
		default:
			return m
		}
	}
}
