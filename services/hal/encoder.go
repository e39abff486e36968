// services/hal/encoder.go
package hal

import (
	"menucode-go/input/evq"
	"menucode-go/input/quadrature"
	"menucode-go/types"
)

// encoder couples two phase pins to a decoder and the input queue. sample
// is the whole interrupt path: two register reads, the decoder, and a
// non-blocking push.
type encoder struct {
	a, b   GPIOPin
	invert bool
	dec    *quadrature.Decoder
	q      *evq.Queue
}

func (e *encoder) levels() (bool, bool) {
	a, b := e.a.Get(), e.b.Get()
	if e.invert {
		return !a, !b
	}
	return a, b
}

func (e *encoder) sample() {
	a, b := e.levels()
	if st, ok := e.dec.OnPhaseSample(a, b); ok {
		e.q.Push(types.StepEvent(st.Knob, st.Dir))
	}
}

// arm installs edge interrupts on both phases. It reports false when either
// pin cannot interrupt, in which case the caller polls instead.
func (e *encoder) arm() (cancel func(), ok bool) {
	ia, okA := e.a.(IRQPin)
	ib, okB := e.b.(IRQPin)
	if !okA || !okB {
		return nil, false
	}
	if err := ia.SetIRQ(EdgeBoth, e.sample); err != nil {
		return nil, false
	}
	if err := ib.SetIRQ(EdgeBoth, e.sample); err != nil {
		_ = ia.ClearIRQ()
		return nil, false
	}
	return func() {
		_ = ia.ClearIRQ()
		_ = ib.ClearIRQ()
	}, true
}
