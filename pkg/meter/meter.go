// Package meter runs the acquisition loop: read, filter, buffer, render, pace.
package meter

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/itohio/baroscope/pkg/config"
	"github.com/itohio/baroscope/pkg/display"
	"github.com/itohio/baroscope/pkg/input"
	"github.com/itohio/baroscope/pkg/sample"
	"github.com/itohio/baroscope/pkg/scope"
	"github.com/itohio/baroscope/pkg/sensor"
	"github.com/sirupsen/logrus"
)

var (
	// ErrSensor wraps failures of the pressure sensor.
	ErrSensor = errors.New("sensor error")
	// ErrRender wraps failures of the display.
	ErrRender = errors.New("render error")
)

// State is the loop state.
type State int

const (
	// Running acquires and draws a frame per iteration.
	Running State = iota
	// Exiting is terminal; Shutdown has been or is being invoked.
	Exiting
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Exiting:
		return "exiting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Deps are the capabilities the loop drives.
type Deps struct {
	Sensor   sensor.Sensor
	Display  display.Display
	Buttons  input.Buttons
	Clock    func() int64 // Monotonic milliseconds
	Sleep    func(time.Duration)
	Shutdown func()
	Log      logrus.FieldLogger
}

// Stats summarizes a run.
type Stats struct {
	Frames      uint64
	Decimations int
	Period      time.Duration
	Samples     int
	Span        time.Duration
	Last        sample.Sample
	LastRaw     float64
	Skipped     uint64 // Non-finite readings dropped
}

// Meter owns the sample history and the sampling period. It is driven from a single goroutine.
type Meter struct {
	cfg   *config.Config
	deps  Deps
	log   logrus.FieldLogger
	chart *scope.Chart
	exit  input.Button

	state       State
	buf         *sample.Buffer
	period      time.Duration
	decimations int
	frames      uint64
	skipped     uint64
	lastRaw     float64
	shutdown    bool
}

// New creates the loop. Clock and Sleep default to the wall clock.
func New(cfg *config.Config, deps Deps) (*Meter, error) {
	if deps.Sensor == nil || deps.Display == nil || deps.Buttons == nil {
		return nil, fmt.Errorf("meter: sensor, display and buttons are required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	exit, err := input.ParseButton(cfg.Display.ExitKey)
	if err != nil {
		return nil, err
	}

	if deps.Clock == nil {
		deps.Clock = MonotonicClock()
	}
	if deps.Sleep == nil {
		deps.Sleep = time.Sleep
	}
	if deps.Shutdown == nil {
		deps.Shutdown = func() {}
	}
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}

	chart := scope.New(scope.Options{
		Padding:     cfg.Chart.Padding,
		Grid:        cfg.Chart.Grid,
		GridDensity: cfg.Chart.GridDensity,
		GridColor:   display.Color(cfg.Chart.GridColor),
		LineColor:   display.Color(cfg.Chart.LineColor),
	})

	return &Meter{
		cfg:    cfg,
		deps:   deps,
		log:    deps.Log,
		chart:  chart,
		exit:   exit,
		state:  Running,
		period: cfg.Sampling.InitialPeriod,
	}, nil
}

// MonotonicClock returns a millisecond clock starting at zero.
func MonotonicClock() func() int64 {
	start := time.Now()
	return func() int64 {
		return time.Since(start).Milliseconds()
	}
}

// Run executes frames until the exit button is pressed or an error occurs.
// On exit it invokes Shutdown once and returns nil.
func (m *Meter) Run() error {
	for m.state == Running {
		if m.deps.Buttons.IsPressed(m.exit) {
			m.state = Exiting
			break
		}
		if err := m.Frame(); err != nil {
			return err
		}
	}

	if !m.shutdown {
		m.shutdown = true
		m.log.WithFields(logrus.Fields{
			"frames":      m.frames,
			"decimations": m.decimations,
		}).Info("Exit requested")
		m.deps.Shutdown()
	}
	return nil
}

// Seed initializes the history with the first reading. Frame seeds on demand.
func (m *Meter) Seed() error {
	now := m.deps.Clock()
	raw, err := m.deps.Sensor.Read()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSensor, err)
	}
	if !finite(raw) {
		return fmt.Errorf("%w: first reading is not finite: %g", ErrSensor, raw)
	}
	m.lastRaw = raw
	m.buf = sample.NewBuffer(sample.Sample{Timestamp: now, Value: raw})
	m.log.WithFields(logrus.Fields{"pressure": raw, "ts": now}).Debug("Seeded history")
	return nil
}

// Frame performs one iteration: clear, read, filter, append, draw, present, sleep, decimate.
func (m *Meter) Frame() error {
	if m.buf == nil {
		if err := m.Seed(); err != nil {
			return err
		}
	}

	d := m.deps.Display
	d.Clear(display.Color(m.cfg.Chart.Background))

	now := m.deps.Clock()
	raw, err := m.deps.Sensor.Read()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSensor, err)
	}

	// A non-finite reading would poison the filter state; the frame is drawn from the existing history.
	if finite(raw) {
		m.lastRaw = raw
		filtered := sample.Filter(m.buf.Last(), now, raw, m.cfg.Filter.SettlingTime)
		if err := m.buf.Append(filtered); err != nil {
			return fmt.Errorf("append sample: %w", err)
		}
	} else {
		m.skipped++
		m.log.WithField("pressure", raw).Warn("Dropped non-finite reading")
	}

	region := scope.Rect{
		XMin: 0,
		XMax: d.Width(),
		YMin: 0,
		YMax: int(float64(d.Height()) * m.cfg.Chart.HeightFraction),
	}
	if err := m.chart.Draw(d, m.buf.Samples(), region); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	scope.Readout(d, m.lastRaw, display.Color(m.cfg.Chart.TextColor), display.FontID(m.cfg.Chart.Font))

	if err := d.Present(); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	m.frames++

	m.deps.Sleep(m.period)

	if m.buf.MaybeDecimate(d.Width(), m.cfg.Sampling.DecimationFactor) {
		m.period *= 2
		m.decimations++
		m.log.WithFields(logrus.Fields{
			"samples": m.buf.Len(),
			"period":  m.period,
		}).Debug("History decimated")
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// State returns the loop state.
func (m *Meter) State() State {
	return m.state
}

// Period returns the current sampling period.
func (m *Meter) Period() time.Duration {
	return m.period
}

// Decimations returns how many times the history has been halved.
func (m *Meter) Decimations() int {
	return m.decimations
}

// Buffer returns the sample history, or nil before the first reading.
func (m *Meter) Buffer() *sample.Buffer {
	return m.buf
}

// Stats returns a summary of the run so far.
func (m *Meter) Stats() Stats {
	st := Stats{
		Frames:      m.frames,
		Decimations: m.decimations,
		Period:      m.period,
		LastRaw:     m.lastRaw,
		Skipped:     m.skipped,
	}
	if m.buf != nil {
		st.Samples = m.buf.Len()
		st.Span = time.Duration(m.buf.Span()) * time.Millisecond
		st.Last = m.buf.Last()
	}
	return st
}
