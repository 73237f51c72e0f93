package sample

import "time"

// settlingDivisor relates the settling time to the filter time constant:
// after five time constants ~97% of a step is reached.
const settlingDivisor = 5

// Alpha returns the smoothing factor for a sample arriving dt milliseconds after the previous one.
// It is 0 for dt == 0 and approaches 1 as dt grows, independent of the sampling rate.
func Alpha(dt int64, settling time.Duration) float64 {
	tau := float64(settling.Milliseconds()) / settlingDivisor
	d := float64(dt)
	return d / (d + tau)
}

// Filter applies a first-order low-pass step to a new raw reading taken at now (ms).
// prev is the previous filtered sample; the filter keeps no other state.
func Filter(prev Sample, now int64, raw float64, settling time.Duration) Sample {
	alpha := Alpha(now-prev.Timestamp, settling)
	return Sample{
		Timestamp: now,
		Value:     prev.Value + alpha*(raw-prev.Value),
	}
}
