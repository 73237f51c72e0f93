package sensor

import (
	"testing"
	"time"

	"github.com/itohio/baroscope/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_Drift(t *testing.T) {
	m := NewMock(&config.MockConfig{
		Pressure:    1000,
		DriftAmpl:   2,
		DriftPeriod: 4 * time.Second,
	})
	start := m.start
	now := start
	m.now = func() time.Time { return now }

	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{0, 1000},
		{time.Second, 1002},
		{2 * time.Second, 1000},
		{3 * time.Second, 998},
	}

	for _, tt := range tests {
		now = start.Add(tt.elapsed)
		got, err := m.Read()
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "elapsed %v", tt.elapsed)
	}
}

func TestMock_Noise(t *testing.T) {
	m := NewMock(&config.MockConfig{Pressure: 1013.25, NoiseLevel: 0.05})

	var sum float64
	const n = 1000
	for i := 0; i < n; i++ {
		v, err := m.Read()
		require.NoError(t, err)
		assert.InDelta(t, 1013.25, v, 1)
		sum += v
	}
	assert.InDelta(t, 1013.25, sum/n, 0.02)
}

func TestMock_DefaultConfig(t *testing.T) {
	m := NewMock(nil)
	v, err := m.Read()
	require.NoError(t, err)
	assert.InDelta(t, 1013.25, v, 2)
}

func TestMock_Close(t *testing.T) {
	m := NewMock(nil)
	require.NoError(t, m.Close())

	_, err := m.Read()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestOpen_Mock(t *testing.T) {
	cfg := config.Default()
	cfg.Sensor.Kind = config.SensorMock

	s, err := Open(cfg, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &Mock{}, s)
}

func TestOpen_UnknownKind(t *testing.T) {
	cfg := config.Default()
	cfg.Sensor.Kind = "carrier-pigeon"

	_, err := Open(cfg, nil)
	assert.Error(t, err)
}
