package common

// Clamp01 bounds a confidence value to [0, 1]. Every confidence computation
// in the engine passes through this before the value escapes.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
