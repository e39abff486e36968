package mathx

// PercentOf maps pct in [0,100] onto [0,top] with 32-bit intermediates and
// rounding to nearest. Values above 100 saturate at top.
func PercentOf(pct uint8, top uint16) uint16 {
	if pct >= 100 {
		return top
	}
	return uint16((uint32(pct)*uint32(top) + 50) / 100)
}

// ToPercent is the inverse of PercentOf, rounded to nearest.
func ToPercent(level, top uint16) uint8 {
	if top == 0 {
		return 0
	}
	if level >= top {
		return 100
	}
	return uint8((uint32(level)*100 + uint32(top)/2) / uint32(top))
}
