package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/intothevoid/doori/pkg/measure"
)

// VideoDisplay shows video frames scaled to fit and turns taps into pointer
// events in frame pixel coordinates.
type VideoDisplay struct {
	widget.BaseWidget

	// mu guards image and frameSize, which are written by the frame loop
	mu        sync.Mutex
	image     *canvas.Image
	frameSize image.Point

	// OnPointer receives primary clicks on the picture and secondary clicks
	// anywhere on the widget. It runs on the fyne event goroutine.
	OnPointer func(measure.PointerEvent)
}

var (
	_ fyne.Tappable          = (*VideoDisplay)(nil)
	_ fyne.SecondaryTappable = (*VideoDisplay)(nil)
)

// NewVideoDisplay is used to create widget instance
func NewVideoDisplay() *VideoDisplay {
	v := &VideoDisplay{}
	v.ExtendBaseWidget(v)

	v.image = canvas.NewImageFromImage(nil)
	v.image.FillMode = canvas.ImageFillContain
	v.image.ScaleMode = canvas.ImageScaleFastest
	return v
}

// UpdateFrame is a thread safe way to send a new image
func (v *VideoDisplay) UpdateFrame(img image.Image) {
	v.mu.Lock()
	v.image.Image = img
	if img != nil {
		v.frameSize = img.Bounds().Size()
	}
	v.mu.Unlock()

	fyne.Do(v.Refresh)
}

// FrameSize is the pixel size of the last frame shown.
func (v *VideoDisplay) FrameSize() image.Point {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frameSize
}

// Tapped implements [fyne.Tappable].
func (v *VideoDisplay) Tapped(ev *fyne.PointEvent) {
	if v.OnPointer == nil {
		return
	}
	p, ok := ImagePoint(ev.Position, v.Size(), v.FrameSize())
	if !ok {
		return
	}
	v.OnPointer(measure.Primary(p.X, p.Y))
}

// TappedSecondary implements [fyne.SecondaryTappable].
func (v *VideoDisplay) TappedSecondary(*fyne.PointEvent) {
	if v.OnPointer != nil {
		v.OnPointer(measure.Secondary())
	}
}

// ImagePoint maps a position inside a widget of size area to a pixel of a
// frame of size frame drawn with contain fitting (scaled to fit, centred,
// letterboxed). Positions on the letterbox report false.
func ImagePoint(pos fyne.Position, area fyne.Size, frame image.Point) (image.Point, bool) {
	if frame.X <= 0 || frame.Y <= 0 || area.Width <= 0 || area.Height <= 0 {
		return image.Point{}, false
	}
	fw, fh := float32(frame.X), float32(frame.Y)
	scale := area.Width / fw
	if s := area.Height / fh; s < scale {
		scale = s
	}
	offX := (area.Width - fw*scale) / 2
	offY := (area.Height - fh*scale) / 2

	x := (pos.X - offX) / scale
	y := (pos.Y - offY) / scale
	if x < 0 || y < 0 || x >= fw || y >= fh {
		return image.Point{}, false
	}
	return image.Pt(int(x), int(y)), true
}

// CreateRenderer is used to create a video renderer
func (v *VideoDisplay) CreateRenderer() fyne.WidgetRenderer {
	return &videoRenderer{v}
}

// videoRenderer implements the logic to draw the widget
type videoRenderer struct {
	v *VideoDisplay
}

// Destroy implements [fyne.WidgetRenderer].
func (r *videoRenderer) Destroy() {}

// MinSize implements [fyne.WidgetRenderer].
func (r *videoRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

// Objects implements [fyne.WidgetRenderer].
func (r *videoRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.v.image}
}

// Refresh implements [fyne.WidgetRenderer].
func (r *videoRenderer) Refresh() {
	r.v.mu.Lock()
	defer r.v.mu.Unlock()
	r.v.image.Refresh()
}

func (r *videoRenderer) Layout(s fyne.Size) {
	r.v.image.Resize(s)
}
