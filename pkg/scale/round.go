package scale

import "math"

// RoundRes rounds num to the nearest multiple of res.
func RoundRes(num, res float64) float64 {
	return math.Round(num/res) * res
}

// FloorRes rounds num down to a multiple of res.
func FloorRes(num, res float64) float64 {
	return math.Floor(num/res) * res
}

// CeilRes rounds num up to a multiple of res.
func CeilRes(num, res float64) float64 {
	return math.Ceil(num/res) * res
}

// Resolution returns the grid step for a span: the power of ten nearest to
// the span divided into n parts. Multiplying span by 10 multiplies the result by 10.
func Resolution(span float64, n int) (float64, error) {
	if span <= 0 || math.IsInf(span, 0) || math.IsNaN(span) {
		return 0, ErrDegenerateRange
	}
	if n <= 0 {
		n = 1
	}
	return math.Pow(10, math.Round(math.Log10(span))) / float64(n), nil
}

// GridLines returns the multiples of res lying within [min, max], in ascending order.
func GridLines(min, max, res float64) []float64 {
	if res <= 0 || max < min {
		return nil
	}
	// tolerate accumulated rounding at the upper edge
	eps := res * 1e-9
	first := CeilRes(min-eps, res)
	n := int(math.Floor((max-first+eps)/res)) + 1
	if n <= 0 {
		return nil
	}
	lines := make([]float64, 0, n)
	for i := range n {
		lines = append(lines, first+float64(i)*res)
	}
	return lines
}
