package scope

import (
	"math"
	"testing"

	"github.com/itohio/baroscope/pkg/display"
	"github.com/itohio/baroscope/pkg/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gridColor display.Color = 0x331a38
	lineColor display.Color = 0x43b5a0
)

type op struct {
	kind           string
	x0, y0, x1, y1 int
	text           string
	color          display.Color
	font           display.FontID
}

// recorder is a Display that records draw calls.
type recorder struct {
	w, h int
	ops  []op
}

func (r *recorder) Width() int  { return r.w }
func (r *recorder) Height() int { return r.h }

func (r *recorder) Clear(c display.Color) {
	r.ops = append(r.ops, op{kind: "clear", color: c})
}

func (r *recorder) DrawLine(x0, y0, x1, y1 int, c display.Color) {
	r.ops = append(r.ops, op{kind: "line", x0: x0, y0: y0, x1: x1, y1: y1, color: c})
}

func (r *recorder) DrawText(x, y int, s string, c display.Color, font display.FontID) {
	r.ops = append(r.ops, op{kind: "text", x0: x, y0: y, text: s, color: c, font: font})
}

func (r *recorder) Present() error { return nil }

func (r *recorder) lines(c display.Color) []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == "line" && o.color == c {
			out = append(out, o)
		}
	}
	return out
}

func testOptions(grid bool, padding float64) Options {
	return Options{
		Padding:     padding,
		Grid:        grid,
		GridDensity: 5,
		GridColor:   gridColor,
		LineColor:   lineColor,
	}
}

func ramp(n int) []sample.Sample {
	out := make([]sample.Sample, n)
	for i := range out {
		out[i] = sample.Sample{Timestamp: int64(i * 100), Value: 1000 + float64(i)}
	}
	return out
}

func TestChart_EmptyHistory(t *testing.T) {
	d := &recorder{w: 100, h: 50}
	require.NoError(t, New(testOptions(true, 0.05)).Draw(d, nil, Rect{0, 100, 0, 50}))
	assert.Empty(t, d.ops)
}

func TestChart_SingleSample(t *testing.T) {
	d := &recorder{w: 100, h: 50}
	s := []sample.Sample{{Timestamp: 0, Value: 950}}

	require.NoError(t, New(testOptions(true, 0)).Draw(d, s, Rect{0, 100, 0, 50}))

	points := d.lines(lineColor)
	require.Len(t, points, 1)
	assert.Equal(t, op{kind: "line", x0: 50, y0: 25, x1: 50, y1: 25, color: lineColor}, points[0])
}

func TestChart_FlatSignal(t *testing.T) {
	d := &recorder{w: 100, h: 50}
	s := []sample.Sample{{0, 1013}, {100, 1013}, {200, 1013}}

	require.NoError(t, New(testOptions(false, 0)).Draw(d, s, Rect{0, 100, 0, 50}))

	segs := d.lines(lineColor)
	require.Len(t, segs, 2)
	for _, seg := range segs {
		assert.Equal(t, 25, seg.y0)
		assert.Equal(t, 25, seg.y1)
	}
}

func TestChart_SegmentCount(t *testing.T) {
	for _, n := range []int{2, 3, 10, 100} {
		d := &recorder{w: 320, h: 192}
		require.NoError(t, New(testOptions(false, 0.05)).Draw(d, ramp(n), Rect{0, 320, 0, 192}))
		assert.Len(t, d.lines(lineColor), n-1, "n=%d", n)
	}
}

func TestChart_Mapping(t *testing.T) {
	d := &recorder{w: 100, h: 50}
	s := []sample.Sample{{0, 1000}, {1000, 1010}}

	require.NoError(t, New(testOptions(false, 0.1)).Draw(d, s, Rect{0, 100, 0, 50}))

	segs := d.lines(lineColor)
	require.Len(t, segs, 1)
	// Oldest sample bottom-left, newest (highest) top-right of the padded area.
	assert.Equal(t, 10, segs[0].x0)
	assert.Equal(t, 45, segs[0].y0)
	assert.Equal(t, 90, segs[0].x1)
	assert.Equal(t, 5, segs[0].y1)
}

func TestChart_RegionOffset(t *testing.T) {
	d := &recorder{w: 200, h: 200}
	s := []sample.Sample{{0, 1000}, {1000, 1010}}

	require.NoError(t, New(testOptions(false, 0)).Draw(d, s, Rect{100, 200, 50, 150}))

	segs := d.lines(lineColor)
	require.Len(t, segs, 1)
	assert.Equal(t, op{kind: "line", x0: 100, y0: 150, x1: 200, y1: 50, color: lineColor}, segs[0])
}

func TestChart_GridBeforeLine(t *testing.T) {
	d := &recorder{w: 100, h: 50}
	s := []sample.Sample{{0, 1000}, {500, 1004}, {1000, 1010}}

	require.NoError(t, New(testOptions(true, 0)).Draw(d, s, Rect{0, 100, 0, 50}))

	grid := d.lines(gridColor)
	require.NotEmpty(t, grid)

	seenLine := false
	for _, o := range d.ops {
		switch o.color {
		case lineColor:
			seenLine = true
		case gridColor:
			assert.False(t, seenLine, "grid drawn after data line")
		}
	}
	assert.True(t, seenLine)
}

func TestChart_GridPositions(t *testing.T) {
	d := &recorder{w: 100, h: 50}
	s := []sample.Sample{{0, 1000}, {1000, 1010}}

	require.NoError(t, New(testOptions(true, 0)).Draw(d, s, Rect{0, 100, 0, 50}))

	var vertical, horizontal []op
	for _, g := range d.lines(gridColor) {
		if g.x0 == g.x1 {
			vertical = append(vertical, g)
		} else {
			horizontal = append(horizontal, g)
		}
	}

	// Time span 1000 ms gives 200 ms steps, value span 10 mbar gives 2 mbar steps.
	require.Len(t, vertical, 6)
	for i, g := range vertical {
		assert.Equal(t, i*20, g.x0)
		assert.Equal(t, 0, g.y0)
		assert.Equal(t, 50, g.y1)
	}
	require.Len(t, horizontal, 6)
	for i, g := range horizontal {
		assert.Equal(t, 50-i*10, g.y0)
		assert.Equal(t, 0, g.x0)
		assert.Equal(t, 100, g.x1)
	}
}

func TestChart_NoGrid(t *testing.T) {
	d := &recorder{w: 100, h: 50}
	require.NoError(t, New(testOptions(false, 0)).Draw(d, ramp(5), Rect{0, 100, 0, 50}))
	assert.Empty(t, d.lines(gridColor))
}

func TestReadout(t *testing.T) {
	d := &recorder{w: 320, h: 240}
	Readout(d, 1013.254, lineColor, display.FontRegular18)

	require.Len(t, d.ops, 1)
	assert.Equal(t, op{
		kind:  "text",
		x0:    16,
		y0:    210,
		text:  "1013.25 mbar",
		color: lineColor,
		font:  display.FontRegular18,
	}, d.ops[0])
}

func TestChart_NonFiniteHistory(t *testing.T) {
	d := &recorder{w: 100, h: 50}
	s := []sample.Sample{{Timestamp: 0, Value: 1000}, {Timestamp: 100, Value: math.NaN()}}

	require.NoError(t, New(testOptions(true, 0.05)).Draw(d, s, Rect{0, 100, 0, 50}))
	assert.Empty(t, d.ops)
}
