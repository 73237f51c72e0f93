// Package sample holds the filtered pressure history: samples, the time-aware
// low-pass filter producing them and the bounded buffer retaining them.
package sample

import "errors"

// ErrOutOfOrder is returned when a sample older than the last buffered one is appended.
var ErrOutOfOrder = errors.New("sample: timestamp is older than the last sample")

// Sample represents a filtered measurement.
type Sample struct {
	Timestamp int64   // Monotonic timestamp (ms)
	Value     float64 // Filtered value (mbar)
}

// Bounds returns the minimum and maximum timestamp and value over samples.
// ok is false for an empty slice.
func Bounds(samples []Sample) (minKey, maxKey int64, minValue, maxValue float64, ok bool) {
	if len(samples) == 0 {
		return 0, 0, 0, 0, false
	}

	minKey, maxKey = samples[0].Timestamp, samples[0].Timestamp
	minValue, maxValue = samples[0].Value, samples[0].Value
	for _, s := range samples[1:] {
		minKey = min(minKey, s.Timestamp)
		maxKey = max(maxKey, s.Timestamp)
		minValue = min(minValue, s.Value)
		maxValue = max(maxValue, s.Value)
	}
	return minKey, maxKey, minValue, maxValue, true
}
