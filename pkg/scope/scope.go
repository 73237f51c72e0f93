// Package scope renders the pressure history as an auto-scaled line chart.
package scope

import (
	"math"

	"github.com/itohio/baroscope/pkg/display"
	"github.com/itohio/baroscope/pkg/sample"
	"github.com/itohio/baroscope/pkg/scale"
)

const (
	// timeUnit is the fallback time span (ms) for a single-sample history.
	timeUnit = 1.0
	// valueUnit is the fallback value span (mbar) for a flat history.
	valueUnit = 1.0
)

// Rect is a drawable region in pixels. YMin is the top edge.
type Rect struct {
	XMin, XMax int
	YMin, YMax int
}

// Width returns the horizontal size of r.
func (r Rect) Width() int { return r.XMax - r.XMin }

// Height returns the vertical size of r.
func (r Rect) Height() int { return r.YMax - r.YMin }

// Options control chart appearance.
type Options struct {
	Padding     float64 // Fraction of the region left empty on each side
	Grid        bool
	GridDensity int // Approximate number of grid lines per axis
	GridColor   display.Color
	LineColor   display.Color
}

// Chart draws a sample history onto a display. It keeps no state between frames.
type Chart struct {
	opts Options
}

// New creates a chart renderer.
func New(opts Options) *Chart {
	if opts.GridDensity <= 0 {
		opts.GridDensity = 5
	}
	return &Chart{opts: opts}
}

// Options returns the chart options.
func (c *Chart) Options() Options {
	return c.opts
}

// Draw renders the grid and the polyline of samples inside r.
// Axis ranges are derived from the whole history every call.
func (c *Chart) Draw(d display.Display, samples []sample.Sample, r Rect) error {
	minKey, maxKey, minValue, maxValue, ok := sample.Bounds(samples)
	if !ok || !finite(float64(minKey), float64(maxKey), minValue, maxValue) {
		return nil
	}

	xMin, xMax := scale.Widen(float64(minKey), float64(maxKey), timeUnit)
	yMin, yMax := scale.Widen(minValue, maxValue, valueUnit)

	p, err := newPlot(r, c.opts.Padding, xMin, xMax, yMin, yMax)
	if err != nil {
		return err
	}

	if c.opts.Grid {
		if err := c.drawGrid(d, p); err != nil {
			return err
		}
	}
	c.drawSeries(d, p, samples)

	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
