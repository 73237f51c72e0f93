package scope

import (
	"fmt"
	"math"

	"github.com/itohio/baroscope/pkg/display"
	"github.com/itohio/baroscope/pkg/sample"
	"github.com/itohio/baroscope/pkg/scale"
)

// plot maps data coordinates into a padded region.
type plot struct {
	region     Rect
	x, y       scale.Mapper
	xMin, xMax float64
	yMin, yMax float64
}

func newPlot(r Rect, padding, xMin, xMax, yMin, yMax float64) (plot, error) {
	w := float64(r.Width())
	h := float64(r.Height())
	left := float64(r.XMin) + padding*w
	right := float64(r.XMin) + (1-padding)*w
	top := float64(r.YMin) + padding*h
	bottom := float64(r.YMin) + (1-padding)*h

	x, err := scale.NewMapper(xMin, xMax, left, right)
	if err != nil {
		return plot{}, fmt.Errorf("time axis: %w", err)
	}
	// Larger values are drawn closer to the top edge.
	y, err := scale.NewMapper(yMax, yMin, top, bottom)
	if err != nil {
		return plot{}, fmt.Errorf("value axis: %w", err)
	}

	return plot{region: r, x: x, y: y, xMin: xMin, xMax: xMax, yMin: yMin, yMax: yMax}, nil
}

func (p plot) point(s sample.Sample) (int, int) {
	return pixel(p.x.Map(float64(s.Timestamp))), pixel(p.y.Map(s.Value))
}

// drawGrid draws full-height lines at nice time positions and full-width lines at nice value positions.
func (c *Chart) drawGrid(d display.Display, p plot) error {
	xRes, err := scale.Resolution(p.xMax-p.xMin, c.opts.GridDensity)
	if err != nil {
		return fmt.Errorf("time grid: %w", err)
	}
	yRes, err := scale.Resolution(p.yMax-p.yMin, c.opts.GridDensity)
	if err != nil {
		return fmt.Errorf("value grid: %w", err)
	}

	r := p.region
	for _, t := range scale.GridLines(p.xMin, p.xMax, xRes) {
		x := pixel(p.x.Map(t))
		d.DrawLine(x, r.YMin, x, r.YMax, c.opts.GridColor)
	}
	for _, v := range scale.GridLines(p.yMin, p.yMax, yRes) {
		y := pixel(p.y.Map(v))
		d.DrawLine(r.XMin, y, r.XMax, y, c.opts.GridColor)
	}
	return nil
}

// drawSeries connects consecutive samples with straight segments.
func (c *Chart) drawSeries(d display.Display, p plot, samples []sample.Sample) {
	if len(samples) == 1 {
		x, y := p.point(samples[0])
		d.DrawLine(x, y, x, y, c.opts.LineColor)
		return
	}

	x0, y0 := p.point(samples[0])
	for _, s := range samples[1:] {
		x1, y1 := p.point(s)
		d.DrawLine(x0, y0, x1, y1, c.opts.LineColor)
		x0, y0 = x1, y1
	}
}

// Readout draws the raw pressure near the bottom-left corner of the display.
func Readout(d display.Display, raw float64, c display.Color, font display.FontID) {
	x := d.Width() / 20
	y := d.Height()*19/20 - 18
	d.DrawText(x, y, FormatPressure(raw), c, font)
}

// FormatPressure formats a pressure reading for display.
func FormatPressure(mbar float64) string {
	return fmt.Sprintf("%.2f mbar", mbar)
}

func pixel(v float64) int {
	return int(math.Round(v))
}
