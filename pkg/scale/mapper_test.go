package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMapper_Endpoints(t *testing.T) {
	tests := []struct {
		name                         string
		inMin, inMax, outMin, outMax float64
	}{
		{name: "increasing", inMin: 0, inMax: 100, outMin: 16, outMax: 304},
		{name: "inverted y axis", inMin: 1020, inMax: 1000, outMin: 9.6, outMax: 182.4},
		{name: "negative source", inMin: -5, inMax: 5, outMin: 0, outMax: 1},
		{name: "timestamps", inMin: 123456, inMax: 987654, outMin: 16, outMax: 304},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMapper(tt.inMin, tt.inMax, tt.outMin, tt.outMax)
			require.NoError(t, err)
			assert.InDelta(t, tt.outMin, m.Map(tt.inMin), 1e-9)
			assert.InDelta(t, tt.outMax, m.Map(tt.inMax), 1e-9)
		})
	}
}

func TestNewMapper_Monotonic(t *testing.T) {
	up, err := NewMapper(0, 10, 0, 100)
	require.NoError(t, err)
	down, err := NewMapper(10, 0, 0, 100)
	require.NoError(t, err)

	for v := 0.0; v < 10; v += 0.5 {
		assert.Less(t, up.Map(v), up.Map(v+0.5))
		assert.Greater(t, down.Map(v), down.Map(v+0.5))
	}
	assert.InDelta(t, 50, up.Map(5), 1e-9)
	assert.InDelta(t, 50, down.Map(5), 1e-9)
}

func TestNewMapper_Degenerate(t *testing.T) {
	_, err := NewMapper(950, 950, 0, 100)
	assert.ErrorIs(t, err, ErrDegenerateRange)
}

func TestWiden(t *testing.T) {
	lo, hi := Widen(1, 2, 1)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.0, hi)

	lo, hi = Widen(950, 950, 1)
	assert.Equal(t, 949.5, lo)
	assert.Equal(t, 950.5, hi)

	_, err := NewMapper(lo, hi, 0, 1)
	assert.NoError(t, err)
}
