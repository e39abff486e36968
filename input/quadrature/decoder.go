// Package quadrature turns two-phase encoder samples into detent steps.
//
// The phase pair (A,B) walks the Gray-code cycle 00→01→11→10→00 in one
// direction and the reverse in the other. Only single-bit transitions count;
// a sample that flips both lines at once is treated as contact noise and the
// tracker resynchronises on it. No timer is needed: bounce rarely produces a
// complete, ordered cycle.
package quadrature

import (
	"sync/atomic"

	"menucode-go/types"
)

// Resolution policies, expressed as valid transitions per emitted step.
const (
	FullCycle    uint8 = 4 // one step per complete 4-state cycle (detent encoders)
	HalfCycle    uint8 = 2
	QuarterCycle uint8 = 1
)

// position of each 2-bit state (a<<1|b) along the forward cycle.
var cyclePos = [4]int8{0, 1, 3, 2}

type Config struct {
	Knob               uint8
	TransitionsPerStep uint8 // FullCycle when zero
}

// Decoder is driven from a single producer context (edge interrupt or poll
// loop). Counters may be read concurrently.
type Decoder struct {
	knob  uint8
	per   int8
	state uint8 // last sampled a<<1|b
	acc   int8  // net valid transitions since the last step or resync

	steps   atomic.Uint32
	invalid atomic.Uint32
}

func New(cfg Config) *Decoder {
	per := cfg.TransitionsPerStep
	switch per {
	case QuarterCycle, HalfCycle, FullCycle:
	default:
		per = FullCycle
	}
	return &Decoder{knob: cfg.Knob, per: int8(per)}
}

func encode(a, b bool) uint8 {
	var s uint8
	if a {
		s |= 2
	}
	if b {
		s |= 1
	}
	return s
}

// Reset seeds the phase state, e.g. with the levels read at boot.
func (d *Decoder) Reset(a, b bool) {
	d.state = encode(a, b)
	d.acc = 0
}

// OnPhaseSample feeds one sampled (A,B) pair. It returns a step when the
// configured number of ordered transitions has accumulated in one direction.
func (d *Decoder) OnPhaseSample(a, b bool) (types.EncoderStep, bool) {
	next := encode(a, b)
	if next == d.state {
		return types.EncoderStep{}, false
	}
	delta := (cyclePos[next] - cyclePos[d.state] + 4) % 4
	d.state = next

	switch delta {
	case 1:
		d.acc++
	case 3:
		d.acc--
	default:
		// Skipped a state: direction unknown. Start over from here.
		d.acc = 0
		d.invalid.Add(1)
		return types.EncoderStep{}, false
	}

	switch d.acc {
	case d.per:
		d.acc = 0
		d.steps.Add(1)
		return types.EncoderStep{Knob: d.knob, Dir: +1}, true
	case -d.per:
		d.acc = 0
		d.steps.Add(1)
		return types.EncoderStep{Knob: d.knob, Dir: -1}, true
	}
	return types.EncoderStep{}, false
}

// Invalid returns the number of samples rejected as noise.
func (d *Decoder) Invalid() uint32 { return d.invalid.Load() }

// Steps returns the number of steps emitted.
func (d *Decoder) Steps() uint32 { return d.steps.Load() }

// Knob returns the encoder id stamped on emitted steps.
func (d *Decoder) Knob() uint8 { return d.knob }
