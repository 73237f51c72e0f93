// Package scale maps values between numeric intervals and places grid lines on "nice" boundaries.
package scale

import "errors"

// ErrDegenerateRange is returned when a source interval collapses to a single point.
var ErrDegenerateRange = errors.New("scale: degenerate range")

// Mapper is a linear mapping from one interval onto another.
type Mapper struct {
	inMin  float64
	outMin float64
	factor float64
}

// NewMapper creates a Mapper projecting [inMin, inMax] onto [outMin, outMax].
// Passing inMax < inMin (or outMax < outMin) inverts the direction of the mapping.
func NewMapper(inMin, inMax, outMin, outMax float64) (Mapper, error) {
	if inMax == inMin {
		return Mapper{}, ErrDegenerateRange
	}
	return Mapper{
		inMin:  inMin,
		outMin: outMin,
		factor: (outMax - outMin) / (inMax - inMin),
	}, nil
}

// Map projects v onto the target interval.
func (m Mapper) Map(v float64) float64 {
	return m.outMin + (v-m.inMin)*m.factor
}

// Widen returns [min, max] unchanged unless it is degenerate, in which case
// it is expanded symmetrically to a span of unit.
func Widen(min, max, unit float64) (float64, float64) {
	if max != min {
		return min, max
	}
	return min - unit/2, max + unit/2
}
