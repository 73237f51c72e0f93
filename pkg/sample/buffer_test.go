package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilledBuffer(t *testing.T, n int) *Buffer {
	t.Helper()
	b := NewBuffer(Sample{Timestamp: 0, Value: 0})
	for i := 1; i < n; i++ {
		require.NoError(t, b.Append(Sample{Timestamp: int64(i) * 10, Value: float64(i)}))
	}
	require.Equal(t, n, b.Len())
	return b
}

func TestNewBuffer(t *testing.T) {
	seed := Sample{Timestamp: 42, Value: 1013.25}
	b := NewBuffer(seed)

	assert.Equal(t, 1, b.Len())
	assert.Equal(t, seed, b.Last())
	assert.Equal(t, []Sample{seed}, b.Samples())
	assert.Equal(t, int64(0), b.Span())
}

func TestBuffer_Append(t *testing.T) {
	b := NewBuffer(Sample{Timestamp: 100, Value: 1})

	require.NoError(t, b.Append(Sample{Timestamp: 100, Value: 2}))
	require.NoError(t, b.Append(Sample{Timestamp: 150, Value: 3}))
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, Sample{Timestamp: 150, Value: 3}, b.Last())
	assert.Equal(t, int64(50), b.Span())

	err := b.Append(Sample{Timestamp: 149, Value: 4})
	assert.ErrorIs(t, err, ErrOutOfOrder)
	assert.Equal(t, 3, b.Len())
}

func TestDecimate(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{name: "single", n: 1, want: 1},
		{name: "even", n: 10, want: 5},
		{name: "odd", n: 11, want: 6},
		{name: "large even", n: 108, want: 54},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFilledBuffer(t, tt.n).Samples()
			orig := append([]Sample(nil), src...)

			got := Decimate(nil, src)
			require.Len(t, got, tt.want)
			for i, s := range got {
				assert.Equal(t, orig[2*i], s)
			}
			assert.Equal(t, orig[0], got[0])
			if tt.n%2 == 1 {
				assert.Equal(t, orig[tt.n-1], got[len(got)-1])
			}
		})
	}
}

func TestDecimate_InPlace(t *testing.T) {
	src := newFilledBuffer(t, 7).Samples()
	orig := append([]Sample(nil), src...)

	got := Decimate(src, src)
	require.Len(t, got, 4)
	assert.Equal(t, []Sample{orig[0], orig[2], orig[4], orig[6]}, got)
	assert.Equal(t, cap(src), cap(got))
}

func TestBuffer_MaybeDecimate(t *testing.T) {
	// width 30px, factor 3: threshold is 10
	b := newFilledBuffer(t, 10)
	assert.False(t, b.MaybeDecimate(30, 3))
	assert.Equal(t, 10, b.Len())

	require.NoError(t, b.Append(Sample{Timestamp: 100, Value: 10}))
	assert.True(t, b.MaybeDecimate(30, 3))
	require.Equal(t, 6, b.Len())

	for i, s := range b.Samples() {
		assert.Equal(t, int64(i*2)*10, s.Timestamp)
		assert.Equal(t, float64(i*2), s.Value)
	}
	assert.Equal(t, Sample{Timestamp: 100, Value: 10}, b.Last())
}

func TestBuffer_MaybeDecimate_FractionalThreshold(t *testing.T) {
	// 320 / 3 = 106.67: 106 samples stay, 107 are halved
	b := newFilledBuffer(t, 106)
	assert.False(t, b.MaybeDecimate(320, 3))

	require.NoError(t, b.Append(Sample{Timestamp: 2000, Value: 1}))
	assert.True(t, b.MaybeDecimate(320, 3))
	assert.Equal(t, 54, b.Len())
}

func TestBounds(t *testing.T) {
	_, _, _, _, ok := Bounds(nil)
	assert.False(t, ok)

	samples := []Sample{
		{Timestamp: 10, Value: 1013.2},
		{Timestamp: 20, Value: 1012.8},
		{Timestamp: 30, Value: 1013.9},
	}
	minKey, maxKey, minValue, maxValue, ok := Bounds(samples)
	require.True(t, ok)
	assert.Equal(t, int64(10), minKey)
	assert.Equal(t, int64(30), maxKey)
	assert.Equal(t, 1012.8, minValue)
	assert.Equal(t, 1013.9, maxValue)
}
