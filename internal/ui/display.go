package ui

import (
	"context"
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Display shows images and reports key presses.
type Display interface {
	Show(img image.Image)
	// WaitKey returns the next key pressed within timeout, or "" if none was.
	WaitKey(ctx context.Context, timeout time.Duration) fyne.KeyName
}

// FyneDisplay implements Display on a Fyne window.
type FyneDisplay struct {
	window fyne.Window
	view   *sampleView
	keys   chan fyne.KeyName
}

// NewFyneDisplay sets a size×size sample view as the window content and starts collecting key presses.
func NewFyneDisplay(window fyne.Window, size int) *FyneDisplay {
	d := &FyneDisplay{
		window: window,
		view:   newSampleView(size),
		keys:   make(chan fyne.KeyName, 16),
	}
	window.SetContent(d.view)
	window.Canvas().SetOnTypedKey(d.handleKey)
	return d
}

// Show replaces the displayed image. Safe to call from any goroutine.
func (d *FyneDisplay) Show(img image.Image) {
	fyne.Do(func() {
		d.view.SetImage(img)
	})
}

// WaitKey implements Display.
func (d *FyneDisplay) WaitKey(ctx context.Context, timeout time.Duration) fyne.KeyName {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case key := <-d.keys:
		return key
	case <-timer.C:
		return ""
	case <-ctx.Done():
		return ""
	}
}

// handleKey queues a key press; presses beyond the buffer are dropped.
func (d *FyneDisplay) handleKey(ev *fyne.KeyEvent) {
	select {
	case d.keys <- ev.Name:
	default:
	}
}

// sampleView is a fixed-size image that accepts taps.
type sampleView struct {
	widget.BaseWidget

	image *canvas.Image
	taps  int
}

func newSampleView(size int) *sampleView {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(float32(size), float32(size)))

	v := &sampleView{image: img}
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget.
func (v *sampleView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.image)
}

// SetImage must be called on the UI thread.
func (v *sampleView) SetImage(img image.Image) {
	v.image.Image = img
	v.image.Refresh()
}

// Tapped implements fyne.Tappable. Taps outside the view are ignored; taps inside never change what is shown.
func (v *sampleView) Tapped(ev *fyne.PointEvent) {
	if !v.contains(ev.Position) {
		return
	}
	v.taps++
}

func (v *sampleView) contains(pos fyne.Position) bool {
	size := v.Size()
	return pos.X >= 0 && pos.Y >= 0 && pos.X <= size.Width && pos.Y <= size.Height
}
