package display

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Presenter shows a finished frame, e.g. in a window.
type Presenter interface {
	Present(frame *image.RGBA) error
}

// Framebuffer is a Display backed by an in-memory RGBA image.
// Lines are rasterized with gg, text with tinyfont. Present hands the frame to a Presenter.
type Framebuffer struct {
	img       *image.RGBA
	dc        *gg.Context
	glyphs    glyphTarget
	presenter Presenter
	log       logrus.FieldLogger
	warned    map[FontID]bool
}

var _ Display = (*Framebuffer)(nil)

// NewFramebuffer creates a width x height framebuffer presenting to p.
func NewFramebuffer(width, height int, p Presenter, log logrus.FieldLogger) *Framebuffer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	dc := gg.NewContextForRGBA(img)
	dc.SetLineWidth(1)
	return &Framebuffer{
		img:       img,
		dc:        dc,
		glyphs:    glyphTarget{img: img},
		presenter: p,
		log:       log,
		warned:    make(map[FontID]bool),
	}
}

// Width returns the width in pixels.
func (f *Framebuffer) Width() int { return f.img.Rect.Dx() }

// Height returns the height in pixels.
func (f *Framebuffer) Height() int { return f.img.Rect.Dy() }

// Image returns the backing image.
func (f *Framebuffer) Image() *image.RGBA { return f.img }

// Clear fills the whole frame with c.
func (f *Framebuffer) Clear(c Color) {
	draw.Draw(f.img, f.img.Bounds(), &image.Uniform{C: c.RGBA()}, image.Point{}, draw.Src)
}

// DrawLine draws a one pixel wide line between pixel centres.
// A zero-length line sets a single pixel.
func (f *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	if x0 == x1 && y0 == y1 {
		if image.Pt(x0, y0).In(f.img.Rect) {
			f.img.SetRGBA(x0, y0, c.RGBA())
		}
		return
	}
	f.dc.SetColor(c.RGBA())
	f.dc.DrawLine(float64(x0)+0.5, float64(y0)+0.5, float64(x1)+0.5, float64(y1)+0.5)
	f.dc.Stroke()
}

// DrawText draws s with its top-left corner at (x, y).
func (f *Framebuffer) DrawText(x, y int, s string, c Color, font FontID) {
	fc, ok := lookupFace(font)
	if !ok && !f.warned[font] {
		f.warned[font] = true
		f.log.WithField("font", font).Warn("Unknown font, using default")
	}
	tinyfont.WriteLine(&f.glyphs, fc.font, int16(x), int16(y)+fc.ascent, s, c.RGBA())
}

// Present hands the frame to the presenter.
func (f *Framebuffer) Present() error {
	if f.presenter == nil {
		return nil
	}
	return f.presenter.Present(f.img)
}

// glyphTarget adapts the image to drivers.Displayer for tinyfont.
type glyphTarget struct {
	img *image.RGBA
}

func (g *glyphTarget) Size() (x, y int16) {
	return int16(g.img.Rect.Dx()), int16(g.img.Rect.Dy())
}

func (g *glyphTarget) SetPixel(x, y int16, c color.RGBA) {
	p := image.Pt(int(x), int(y))
	if !p.In(g.img.Rect) {
		return
	}
	g.img.SetRGBA(p.X, p.Y, c)
}

func (g *glyphTarget) Display() error {
	return nil
}

func (g *glyphTarget) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).Intersect(g.img.Rect)
	draw.Draw(g.img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
	return nil
}

func (g *glyphTarget) SetRotation(drivers.Rotation) error {
	return nil
}
