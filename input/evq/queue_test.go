package evq

import (
	"sync"
	"testing"
	"time"

	"menucode-go/types"
)

func TestFIFO(t *testing.T) {
	q := New(4)
	q.Push(types.StepEvent(0, 1))
	q.Push(types.StepEvent(0, -1))
	q.Push(types.ButtonEventOf(1, types.ButtonPressed))

	want := []types.InputEvent{
		types.StepEvent(0, 1),
		types.StepEvent(0, -1),
		types.ButtonEventOf(1, types.ButtonPressed),
	}
	for i, w := range want {
		got, ok := q.Pop()
		if !ok || got != w {
			t.Fatalf("pop %d: got %+v ok=%v want %+v", i, got, ok, w)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestOverflowKeepsNewest(t *testing.T) {
	const capacity = 8
	const total = 21
	q := New(capacity)
	for i := 0; i < total; i++ {
		q.Push(types.ButtonEventOf(uint8(i), types.ButtonPressed))
	}
	if q.Overflow() != total-capacity {
		t.Fatalf("overflow = %d, want %d", q.Overflow(), total-capacity)
	}
	if q.Len() != capacity {
		t.Fatalf("len = %d, want %d", q.Len(), capacity)
	}
	for i := total - capacity; i < total; i++ {
		ev, ok := q.Pop()
		if !ok || ev.Button.ID != uint8(i) {
			t.Fatalf("expected event %d, got %+v ok=%v", i, ev, ok)
		}
	}
	if q.Pushed() != total {
		t.Fatalf("pushed = %d", q.Pushed())
	}
}

func TestDefaultCapacity(t *testing.T) {
	if New(0).Cap() != DefaultCapacity {
		t.Fatal("expected default capacity")
	}
}

func TestConcurrentProducersNeverBlock(t *testing.T) {
	q := New(4)
	var wg sync.WaitGroup
	for p := 0; p < 2; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				q.Push(types.StepEvent(uint8(p), 1))
			}
		}(p)
	}

	received := 0
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case <-q.C():
			received++
		case <-done:
			received += q.Len()
			if uint32(received)+q.Overflow() != 2000 {
				t.Fatalf("received %d + overflow %d != 2000", received, q.Overflow())
			}
			return
		case <-timeout:
			t.Fatal("producers blocked")
		}
	}
}
