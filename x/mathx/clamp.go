package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SaturatingAdd returns v+delta limited to [lo, hi]. The sum is computed in
// int64 so extreme deltas cannot wrap before clamping.
func SaturatingAdd[T constraints.Signed](v, delta, lo, hi T) T {
	return T(Clamp(int64(v)+int64(delta), int64(lo), int64(hi)))
}

// Between reports lo <= v && v <= hi (order-insensitive).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	if hi < lo {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}
