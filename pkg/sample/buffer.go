package sample

import "fmt"

// Buffer is an ordered history of samples with size-triggered decimation.
// It always holds at least one sample and is not safe for concurrent use.
type Buffer struct {
	samples []Sample
}

// NewBuffer creates a Buffer seeded with a single sample.
func NewBuffer(seed Sample) *Buffer {
	samples := make([]Sample, 1, 128)
	samples[0] = seed
	return &Buffer{samples: samples}
}

// Append adds s to the end of the buffer.
func (b *Buffer) Append(s Sample) error {
	if last := b.Last(); s.Timestamp < last.Timestamp {
		return fmt.Errorf("%w: %d < %d", ErrOutOfOrder, s.Timestamp, last.Timestamp)
	}
	b.samples = append(b.samples, s)
	return nil
}

// Last returns the most recent sample. It doubles as the filter state.
func (b *Buffer) Last() Sample {
	return b.samples[len(b.samples)-1]
}

// Len returns the number of buffered samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Samples returns the buffered samples, oldest first.
// The slice is only valid until the next Append or decimation and must not be modified.
func (b *Buffer) Samples() []Sample {
	return b.samples
}

// Span returns the time covered by the buffer in milliseconds.
func (b *Buffer) Span() int64 {
	return b.Last().Timestamp - b.samples[0].Timestamp
}

// Threshold returns the length above which the buffer is decimated.
func Threshold(widthPx int, factor float64) float64 {
	return float64(widthPx) / factor
}

// MaybeDecimate halves the buffer in place when its length exceeds widthPx/factor.
// It reports whether decimation happened; the caller should then double its sampling period.
func (b *Buffer) MaybeDecimate(widthPx int, factor float64) bool {
	if float64(len(b.samples)) <= Threshold(widthPx, factor) {
		return false
	}
	b.samples = Decimate(b.samples, b.samples)
	return true
}
