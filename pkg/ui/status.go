package ui

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/intothevoid/doori/pkg/measure"
)

var (
	statusText = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	hintText   = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
)

const hint = "left click: select object   right click / r: clear   q: quit"

// Status is the text shown by StatusPanel.
type Status struct {
	State    string
	Tracks   string
	Distance string
}

// StatusFor summarises a processed frame.
func StatusFor(f measure.Frame) Status {
	s := Status{
		State:    fmt.Sprintf("Selection: %s (%d/2)", f.State, len(f.Selected)),
		Tracks:   "Tracks: -",
		Distance: "Distance: -",
	}
	if len(f.Selected) > 0 {
		ids := make([]string, len(f.Selected))
		for i, sel := range f.Selected {
			ids[i] = fmt.Sprintf("#%d", sel.TrackID)
		}
		s.Tracks = "Tracks: " + strings.Join(ids, ", ")
	}
	if m := f.Measurement; m != nil {
		s.Distance = fmt.Sprintf("Distance: %.2f m (%.2f mm)", m.Distance.Meters, m.Distance.Millimeters)
	}
	return s
}

// StatusPanel is a status bar under the video showing the selection and the
// latest distance.
type StatusPanel struct {
	widget.BaseWidget

	mu     sync.Mutex
	status Status

	state    *canvas.Text
	tracks   *canvas.Text
	distance *canvas.Text
	root     *fyne.Container
}

// NewStatusPanel creates an empty status panel.
func NewStatusPanel() *StatusPanel {
	p := &StatusPanel{}
	p.ExtendBaseWidget(p)

	p.state = canvas.NewText("", statusText)
	p.tracks = canvas.NewText("", statusText)
	p.distance = canvas.NewText("", statusText)
	p.distance.TextStyle = fyne.TextStyle{Bold: true}
	help := canvas.NewText(hint, hintText)
	help.TextSize = 11

	p.root = container.NewVBox(p.state, p.tracks, p.distance, help)
	p.apply(StatusFor(measure.Frame{}))
	return p
}

// Update shows the status of a processed frame. It may be called from any
// goroutine; unchanged text is not redrawn.
func (p *StatusPanel) Update(f measure.Frame) {
	s := StatusFor(f)
	p.mu.Lock()
	changed := s != p.status
	p.status = s
	p.mu.Unlock()

	if changed {
		fyne.Do(func() { p.apply(s) })
	}
}

// Current returns the text on display.
func (p *StatusPanel) Current() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *StatusPanel) apply(s Status) {
	p.mu.Lock()
	p.status = s
	p.mu.Unlock()

	p.state.Text = s.State
	p.tracks.Text = s.Tracks
	p.distance.Text = s.Distance
	p.root.Refresh()
}

func (p *StatusPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.root)
}
