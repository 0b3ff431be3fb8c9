package ingestion

import "math"

// NormalizeVector scales v to unit length and returns the result as a
// new slice, leaving the input untouched. A zero vector has no
// direction, so it comes back as a fresh zero vector of the same
// dimension.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	magnitude := float32(math.Sqrt(sumSquares))

	result := make([]float32, len(v))
	if magnitude == 0 {
		return result
	}

	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}
