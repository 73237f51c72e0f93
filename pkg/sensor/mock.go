package sensor

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/itohio/baroscope/pkg/config"
)

// Mock simulates a barometer: a slow sinusoidal drift around a mean pressure plus gaussian noise.
type Mock struct {
	cfg *config.MockConfig

	mu     sync.Mutex
	now    func() time.Time
	start  time.Time
	rng    *rand.Rand
	closed bool
}

// NewMock creates a new simulated sensor.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			Pressure:    1013.25,
			DriftAmpl:   0.5,
			DriftPeriod: 2 * time.Minute,
			NoiseLevel:  0.05,
		}
	}

	now := time.Now()
	return &Mock{
		cfg:   cfg,
		now:   time.Now,
		start: now,
		rng:   rand.New(rand.NewPCG(uint64(now.UnixNano()), 0x9e3779b97f4a7c15)),
	}
}

// Read returns the simulated pressure at the current time.
func (m *Mock) Read() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrNotConnected
	}

	elapsed := m.now().Sub(m.start)
	p := m.cfg.Pressure
	if m.cfg.DriftPeriod > 0 {
		phase := 2 * math.Pi * elapsed.Seconds() / m.cfg.DriftPeriod.Seconds()
		p += m.cfg.DriftAmpl * math.Sin(phase)
	}
	if m.cfg.NoiseLevel > 0 {
		p += m.rng.NormFloat64() * m.cfg.NoiseLevel
	}
	return p, nil
}

// Close stops the simulated sensor.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
