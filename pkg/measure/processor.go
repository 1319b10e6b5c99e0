package measure

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PointerKind identifies a pointer event.
type PointerKind int

const (
	PointerNone PointerKind = iota
	// PointerPrimary selects the object under the pointer.
	PointerPrimary
	// PointerSecondary clears the selection.
	PointerSecondary
	// PointerMove is accepted and ignored.
	PointerMove
)

func (k PointerKind) String() string {
	switch k {
	case PointerPrimary:
		return "primary"
	case PointerSecondary:
		return "secondary"
	case PointerMove:
		return "move"
	}
	return "none"
}

// PointerEvent is a pointer action in image pixel coordinates.
type PointerEvent struct {
	Kind  PointerKind
	Point image.Point
}

// Primary builds a primary click at (x, y).
func Primary(x, y int) PointerEvent {
	return PointerEvent{Kind: PointerPrimary, Point: image.Pt(x, y)}
}

// Secondary builds a reset event.
func Secondary() PointerEvent {
	return PointerEvent{Kind: PointerSecondary}
}

// BoxAnnotation asks the renderer to draw one detection.
type BoxAnnotation struct {
	Box      image.Rectangle
	Label    string
	Color    color.RGBA
	TrackID  int
	Selected bool
}

// Measurement asks the renderer to draw the distance between two tracks.
type Measurement struct {
	TrackIDs      [2]int
	Centroids     [2]image.Point
	Distance      DistanceResult
	LineColor     color.RGBA
	CentroidColor color.RGBA
}

// Frame is everything the renderer needs for one frame.
type Frame struct {
	Boxes       []BoxAnnotation
	Measurement *Measurement
	State       State
	Selected    []Selected
}

// eventQueueSize bounds the number of pointer events buffered between two
// frames.
const eventQueueSize = 64

// Processor runs the per-frame measurement cycle. Process, Apply and the
// selection are owned by a single goroutine; Post may be called from any
// goroutine.
type Processor struct {
	cfg    Config
	est    *Estimator
	logger *zap.Logger

	sel    Selection
	last   []Detection
	events chan PointerEvent
}

// NewProcessor validates cfg and returns a processor with an empty
// selection.
func NewProcessor(cfg Config, logger *zap.Logger) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	est, err := NewEstimator(cfg.PixelsPerMeter)
	if err != nil {
		return nil, errors.Wrap(err, "creating estimator")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		cfg:    cfg.clone(),
		est:    est,
		logger: logger,
		events: make(chan PointerEvent, eventQueueSize),
	}, nil
}

// Config returns the processor configuration.
func (p *Processor) Config() Config {
	return p.cfg.clone()
}

// Post queues a pointer event for the next Process call. It never blocks and
// reports false when the queue is full and the event was dropped.
func (p *Processor) Post(ev PointerEvent) bool {
	select {
	case p.events <- ev:
		return true
	default:
		p.logger.Warn("pointer event dropped, queue full", zap.Stringer("kind", ev.Kind))
		return false
	}
}

// Apply handles a pointer event immediately against the most recent
// detections.
func (p *Processor) Apply(ev PointerEvent) {
	switch ev.Kind {
	case PointerPrimary:
		if p.sel.Select(ev.Point, p.last) {
			sel := p.sel.Selected()
			p.logger.Debug("track selected",
				zap.Int("track_id", sel[len(sel)-1].TrackID),
				zap.Int("x", ev.Point.X), zap.Int("y", ev.Point.Y),
				zap.Stringer("state", p.sel.State()))
		} else {
			p.logger.Debug("click ignored",
				zap.Int("x", ev.Point.X), zap.Int("y", ev.Point.Y),
				zap.Int("clicks", p.sel.Clicks()),
				zap.Stringer("state", p.sel.State()))
		}
	case PointerSecondary:
		p.sel.Reset()
		p.logger.Info("selection cleared")
	}
}

// Process runs one frame: queued pointer events are applied against the
// previous frame's detections, then the selection is refreshed from the new
// detections and the draw requests are built.
func (p *Processor) Process(detections []Detection) Frame {
	p.drain()

	p.last = append(p.last[:0], detections...)
	p.sel.Refresh(p.last)

	frame := Frame{
		Boxes:    make([]BoxAnnotation, 0, len(p.last)),
		State:    p.sel.State(),
		Selected: p.sel.Selected(),
	}
	for _, d := range p.last {
		frame.Boxes = append(frame.Boxes, BoxAnnotation{
			Box:      d.Box,
			Label:    p.cfg.Label(d.ClassID),
			Color:    ClassColor(d.ClassID),
			TrackID:  d.TrackID,
			Selected: p.sel.Has(d.TrackID),
		})
	}

	if p.sel.State() == Complete {
		var centroids [2]image.Point
		var ids [2]int
		for i, s := range frame.Selected {
			centroids[i] = Centroid(s.Box)
			ids[i] = s.TrackID
		}
		frame.Measurement = &Measurement{
			TrackIDs:      ids,
			Centroids:     centroids,
			Distance:      p.est.Distance(centroids[0], centroids[1]),
			LineColor:     p.cfg.LineColor.RGBA(),
			CentroidColor: p.cfg.CentroidColor.RGBA(),
		}
	}
	return frame
}

// Selection returns a copy of the current selection.
func (p *Processor) Selection() Selection {
	return p.sel
}

// drain applies only the events queued when it starts; later events wait
// for the next frame.
func (p *Processor) drain() {
	for n := len(p.events); n > 0; n-- {
		p.Apply(<-p.events)
	}
}
