package menu

import "menucode-go/x/mathx"

// Bounded is an integer setting confined to [Min, Max], adjusted in Step
// increments. Adjustments saturate at the bounds and never wrap.
type Bounded struct {
	Min, Max, Step, Current int
}

func (b Bounded) valid() bool {
	return b.Min <= b.Max && b.Step > 0 && mathx.Between(b.Current, b.Min, b.Max)
}

// Adjust moves Current by dir steps and reports whether it changed.
func (b *Bounded) Adjust(dir int) bool {
	next := mathx.SaturatingAdd(b.Current, dir*b.Step, b.Min, b.Max)
	if next == b.Current {
		return false
	}
	b.Current = next
	return true
}

// Set stores v clamped to the bounds and reports whether Current changed.
func (b *Bounded) Set(v int) bool {
	v = mathx.Clamp(v, b.Min, b.Max)
	if v == b.Current {
		return false
	}
	b.Current = v
	return true
}
