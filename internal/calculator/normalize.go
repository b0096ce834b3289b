package calculator

// Normalize maps value into the [lo, hi] band and returns its position as
// 0.0 ~ 1.0, clamped at the edges. A degenerate band (hi == lo) has no
// position, so the neutral 0.5 is returned.
func Normalize(value, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	pos := (value - lo) / (hi - lo)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}
