package display

import (
	"image"

	"github.com/itohio/baroscope/pkg/input"
	"github.com/sirupsen/logrus"
)

// Headless is a Presenter without a window. It counts frames and, when Limit
// is non-zero, presses the exit button after Limit frames.
type Headless struct {
	Limit   uint64
	Buttons *input.Latch
	Exit    input.Button
	Log     logrus.FieldLogger

	frames uint64
}

var _ Presenter = (*Headless)(nil)

// Present records a frame.
func (h *Headless) Present(frame *image.RGBA) error {
	h.frames++
	if h.Log != nil {
		h.Log.WithField("frame", h.frames).Trace("Frame presented")
	}
	if h.Limit > 0 && h.frames >= h.Limit && h.Buttons != nil {
		h.Buttons.Press(h.Exit)
	}
	return nil
}

// Frames returns the number of presented frames.
func (h *Headless) Frames() uint64 {
	return h.frames
}
