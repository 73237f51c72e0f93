package display

import (
	"image"
	"image/draw"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/chewxy/math32"
	"github.com/itohio/baroscope/pkg/input"
)

// Window is a Presenter showing frames in a Fyne window.
// The Home toolbar button, the Escape key and closing the window press the exit button.
type Window struct {
	win     fyne.Window
	image   *canvas.Image
	homeBtn *widget.Button
	toolbar *fyne.Container
	buttons *input.Latch
	exit    input.Button

	mu     sync.Mutex
	frames uint64
}

var _ Presenter = (*Window)(nil)

// NewWindow creates the window for a width x height display magnified by scale.
// exit is the button the measurement loop stops on.
func NewWindow(app fyne.App, title string, width, height int, scale float32, buttons *input.Latch, exit input.Button) *Window {
	w := &Window{
		win:     app.NewWindow(title),
		buttons: buttons,
		exit:    exit,
	}

	w.image = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	w.image.FillMode = canvas.ImageFillContain
	w.image.ScaleMode = canvas.ImageScalePixels

	w.homeBtn = widget.NewButtonWithIcon("", theme.HomeIcon(), w.requestExit)
	w.toolbar = container.NewHBox(w.homeBtn)

	w.win.SetContent(container.NewBorder(nil, w.toolbar, nil, nil, w.image))
	w.win.Canvas().SetOnTypedKey(w.onKey)
	w.win.SetCloseIntercept(w.requestExit)

	s := math32.Max(scale, 1)
	w.win.Resize(fyne.NewSize(math32.Round(float32(width)*s), math32.Round(float32(height)*s)))
	return w
}

// onKey maps keyboard keys to badge buttons.
func (w *Window) onKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape:
		w.requestExit()
	case fyne.KeyHome:
		w.buttons.Press(input.Home)
	case fyne.KeyReturn:
		w.buttons.Press(input.A)
	case fyne.KeyBackspace:
		w.buttons.Press(input.B)
	}
}

// requestExit presses the exit button; the loop quits the app once it sees it.
func (w *Window) requestExit() {
	w.buttons.Press(w.exit)
}

// Present copies frame and schedules a refresh on the Fyne main thread.
func (w *Window) Present(frame *image.RGBA) error {
	snapshot := image.NewRGBA(frame.Rect)
	draw.Draw(snapshot, snapshot.Rect, frame, frame.Rect.Min, draw.Src)

	w.mu.Lock()
	w.frames++
	w.mu.Unlock()

	fyne.Do(func() {
		w.image.Image = snapshot
		w.image.Refresh()
	})
	return nil
}

// Frames returns the number of presented frames.
func (w *Window) Frames() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// AddAction appends a toolbar button. Call before ShowAndRun.
func (w *Window) AddAction(icon fyne.Resource, action func()) *widget.Button {
	btn := widget.NewButtonWithIcon("", icon, action)
	w.toolbar.Add(btn)
	return btn
}

// Fyne returns the underlying window, e.g. as a dialog parent.
func (w *Window) Fyne() fyne.Window {
	return w.win
}

// ShowAndRun shows the window and runs the Fyne event loop until the app quits.
func (w *Window) ShowAndRun() {
	w.win.ShowAndRun()
}

// Close closes the window from any goroutine.
func (w *Window) Close() {
	fyne.Do(w.win.Close)
}
