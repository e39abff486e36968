// Package evq is the bounded hand-off between input producers (encoder
// interrupt, button sampling tick) and the single navigation consumer.
//
// Push never blocks. When the queue is full the oldest unread event is
// dropped and counted.
package evq

import (
	"sync/atomic"

	"menucode-go/types"
)

const DefaultCapacity = 16

type Queue struct {
	ch       chan types.InputEvent
	overflow atomic.Uint32
	pushed   atomic.Uint32
}

func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Queue{ch: make(chan types.InputEvent, capacity)}
}

// Push enqueues ev, evicting the oldest event if the queue is full. Safe to
// call from interrupt handlers and from several producers at once.
func (q *Queue) Push(ev types.InputEvent) {
	q.pushed.Add(1)
	for {
		select {
		case q.ch <- ev:
			return
		default:
		}
		// Full: make room. The consumer may have drained in between, in
		// which case nothing is dropped and the send is retried.
		select {
		case <-q.ch:
			q.overflow.Add(1)
		default:
		}
	}
}

// Pop returns the oldest event without blocking.
func (q *Queue) Pop() (types.InputEvent, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return types.InputEvent{}, false
	}
}

// C exposes the receive side for use in a consumer select loop.
func (q *Queue) C() <-chan types.InputEvent { return q.ch }

func (q *Queue) Len() int { return len(q.ch) }
func (q *Queue) Cap() int { return cap(q.ch) }

// Overflow returns the number of events evicted because the queue was full.
func (q *Queue) Overflow() uint32 { return q.overflow.Load() }

// Pushed returns the number of events offered to the queue.
func (q *Queue) Pushed() uint32 { return q.pushed.Load() }
