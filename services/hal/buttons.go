// services/hal/buttons.go
package hal

import (
	"time"

	"menucode-go/input/debounce"
	"menucode-go/input/evq"
	"menucode-go/types"
)

type buttonLine struct {
	id     uint8
	pin    GPIOPin
	invert bool
}

func (b buttonLine) pressed() bool { return b.pin.Get() != b.invert }

// sampler reads every button on a fixed tick and feeds the debouncer.
type sampler struct {
	lines []buttonLine
	deb   *debounce.Debouncer
	q     *evq.Queue
}

// seed primes the debouncer with the levels present at boot.
func (s *sampler) seed(now time.Time) {
	for _, l := range s.lines {
		s.deb.Seed(l.id, l.pressed(), now)
	}
}

func (s *sampler) tick(now time.Time) {
	for _, l := range s.lines {
		if ev, ok := s.deb.OnLevelSample(l.id, l.pressed(), now); ok {
			s.q.Push(types.ButtonEventOf(ev.ID, ev.Kind))
		}
	}
}
